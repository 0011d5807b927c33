package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert article: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestQueryArgs(t *testing.T) {
	assert.Nil(t, limitOrAll(0))
	require.NotNil(t, limitOrAll(20))
	assert.Equal(t, 20, *limitOrAll(20))

	assert.Nil(t, optionalTime(time.Time{}))
	assert.NotNil(t, optionalTime(time.Now()))
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_schema.sql", names[0])

	script, err := migrationFiles.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{"articles", "stock_documents", "document_lines", "stock_movements", "daily_menus"} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table)
	}
}

// Las columnas de cantidad guardan exactamente la escala a la que la aplicación redondea.
func TestMigrations_EscalaDeCantidades(t *testing.T) {
	script, err := migrationFiles.ReadFile("migrations/001_schema.sql")
	require.NoError(t, err)

	col := regexp.MustCompile(`(?m)^\s+(on_stock|min_on_stock|amount|quantity|stock_after)\s+NUMERIC\((\d+),\s*(\d+)\)`)
	matches := col.FindAllStringSubmatch(string(script), -1)
	require.Len(t, matches, 6)
	for _, m := range matches {
		assert.Equal(t, strconv.Itoa(inventory.LedgerPlaces), m[3], "columna %s", m[1])
	}
}
