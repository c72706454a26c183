package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost:5432/tourship")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, float64(20), cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "no-reply@tourship.app", cfg.MailFrom)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadOverridesAndCSV(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost:5432/tourship")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://tourship.app, https://admin.tourship.app")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://tourship.app", "https://admin.tourship.app"}, cfg.CORSOrigins)
	assert.Equal(t, 5.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoadBadNumberFallsBack(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost:5432/tourship")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.RateLimitBurst)
}
