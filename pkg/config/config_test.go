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

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.False(t, cfg.Database.Configured(), "no database host means demo fallback")
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Session.MagicLinkTTL)
	assert.Equal(t, 5*time.Minute, cfg.Dashboard.CacheTTL)
	assert.False(t, cfg.Roster.DemoMode)
	assert.Empty(t, cfg.Roster.DefaultTeacherEmail)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("BASE_URL", "https://risk.example.com/")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("DEFAULT_TEACHER_EMAIL", "lead@example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Database.Configured())
	assert.Equal(t, "https://risk.example.com", cfg.BaseURL, "trailing slash is stripped")
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Roster.DemoMode)
	assert.Equal(t, "lead@example.com", cfg.Roster.DefaultTeacherEmail)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("nonsense", time.Minute))
	assert.Equal(t, 30*time.Second, parseDuration("30s", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a ,b,, "))
}
