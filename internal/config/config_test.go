package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-applications-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, config.StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestLoadRejectsUnknownStoreBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_DSN", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_dsn is required")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":8099")
	t.Setenv("STORE_BACKEND", "Redis")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8099", cfg.ListenAddr)
	assert.Equal(t, config.StoreRedis, cfg.StoreBackend)
}
