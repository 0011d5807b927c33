package config_test

import (
	"testing"

	"github.com/jhoicas/kitchen-ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_STORE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.App.Store)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_STORE", "POSTGRES")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("DB_MIGRATE", "true")
	t.Setenv("METRICS_PREFIX", "kitchen")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorePostgres, cfg.App.Store)
	assert.Equal(t, 7, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "kitchen", cfg.Metrics.Prefix)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("APP_STORE", "redis")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "k", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/k?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
