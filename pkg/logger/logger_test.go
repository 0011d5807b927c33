package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jhoicas/kitchen-ledger/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	zl := l.Component("ledger")
	zl.Info().Str("document_id", "d-1").Msg("documento aprobado")
	l.Debug().Msg("descartado por nivel")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ledger", entry["component"])
	assert.Equal(t, "d-1", entry["document_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNop_WritesNothing(t *testing.T) {
	l := logger.Nop()
	l.Error().Msg("nada")
	assert.NotNil(t, l)
}
