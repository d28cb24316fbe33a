package database

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePoolConfig(t *testing.T) *pgxpool.Config {
	t.Helper()

	cfg, err := pgxpool.ParseConfig("postgres://auth:pw@localhost:5432/teledetect")
	require.NoError(t, err)
	return cfg
}

func TestApplyPoolSettings(t *testing.T) {
	cfg := parsePoolConfig(t)

	applyPoolSettings(cfg, PoolSettings{
		MaxConns:          25,
		MinConns:          5,
		MaxConnLifetime:   45 * time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		HealthCheckPeriod: time.Minute,
	})

	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, int32(5), cfg.MinConns)
	assert.Equal(t, 45*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, 10*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.HealthCheckPeriod)
}

func TestApplyPoolSettingsKeepsDefaultsForZeroValues(t *testing.T) {
	cfg := parsePoolConfig(t)
	defaultLifetime := cfg.MaxConnLifetime
	defaultIdle := cfg.MaxConnIdleTime

	applyPoolSettings(cfg, PoolSettings{MaxConns: 8})

	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Equal(t, defaultLifetime, cfg.MaxConnLifetime)
	assert.Equal(t, defaultIdle, cfg.MaxConnIdleTime)
}
