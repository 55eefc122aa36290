package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5010", cfg.Port)
	assert.Equal(t, ":5010", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "./data/minesweeper.db", cfg.DBPath)
	assert.Equal(t, "*", cfg.ClientOrigin)
	assert.Equal(t, 3*time.Second, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.SweepInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SESSION_TTL", "45s")
	t.Setenv("SWEEP_INTERVAL", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 45*time.Second, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.SweepInterval)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
