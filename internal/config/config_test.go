package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAuthDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/teledetect")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadAuth()
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, time.Hour, cfg.DBConnMaxLifetime)
	assert.Equal(t, 15*time.Minute, cfg.DBConnMaxIdleTime)
	assert.Equal(t, time.Minute, cfg.DBHealthPeriod)
	assert.Equal(t, 1440, cfg.JWTExpireMinutes)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
}

func TestLoadAuthMissingSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadGatewayRouteOrder(t *testing.T) {
	t.Setenv("FILE_SERVICE_URL", "http://files.internal:9000")

	cfg, err := LoadGateway()
	require.NoError(t, err)

	require.NotEmpty(t, cfg.Routes)
	assert.Equal(t, "/api/v1/auth", cfg.Routes[0].Prefix)
	assert.Equal(t, "http://files.internal:9000", cfg.Routes[1].Backend)
	assert.Equal(t, 30*time.Second, cfg.ProxyTimeout)
	assert.Equal(t, 5*time.Second, cfg.HealthCheckTimeout)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitCSV("http://a, http://b"))
	assert.Nil(t, splitCSV("   "))
}
