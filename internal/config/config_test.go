package config

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMap(t *testing.T, m map[string]string) (*Config, error) {
	t.Helper()
	return Parse(env.Options{Environment: m})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parseMap(t, map[string]string{"DB_DRIVER": "memory"})
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "http://localhost:5173", cfg.AppUrl)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.LDFlag_SeedDbWithTestData)
}

func TestParseBuildsPostgresURL(t *testing.T) {
	cfg, err := parseMap(t, map[string]string{
		"PG_HOST":     "db",
		"PG_USER":     "app",
		"PG_PASSWORD": "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:secret@db:5432/maintenance?sslmode=disable", cfg.DBUrl)

	explicit, err := parseMap(t, map[string]string{"DB_URL": "postgres://x@y/z", "PG_HOST": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://x@y/z", explicit.DBUrl)
}

func TestValidateRejects(t *testing.T) {
	_, err := parseMap(t, map[string]string{})
	require.Error(t, err, "postgres without a URL")

	_, err = parseMap(t, map[string]string{"DB_DRIVER": "mongo"})
	require.Error(t, err)

	_, err = parseMap(t, map[string]string{"DB_DRIVER": "memory", "DB_MAX_CONNS": "lots"})
	require.Error(t, err)
}

func TestOfflineFlagsKeepEnvDefaults(t *testing.T) {
	cfg, err := parseMap(t, map[string]string{"DB_DRIVER": "memory", "SEED_DB_WITH_TEST_DATA": "true", "CORS_HIGH_SECURITY": "true"})
	require.NoError(t, err)
	require.NoError(t, cfg.loadFlags())
	assert.True(t, cfg.LDFlag_SeedDbWithTestData)
	assert.True(t, cfg.LDFlag_CORSHighSecurity)
	assert.False(t, cfg.LDFlag_SendgridSandboxMode)
}
