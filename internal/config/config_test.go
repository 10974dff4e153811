package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "BOT_STRATEGY", "PARALLEL_SEARCH", "ALLOWED_ORIGINS", "SESSION_IDLE_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "deterministic", cfg.BotStrategy)
	assert.False(t, cfg.ParallelSearch)
	assert.Equal(t, time.Hour, cfg.SessionIdleTimeout)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Same(t, cfg, AppConfig)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/flexfour")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("FRONTEND_URL", "https://play.example")
	t.Setenv("PARALLEL_SEARCH", "true")
	t.Setenv("BOT_STRATEGY", "probabilistic")

	cfg := LoadConfig()
	require.Equal(t, "9000", cfg.Port)
	assert.Contains(t, cfg.DatabaseURL, "default_query_exec_mode=simple_protocol")
	assert.Equal(t, []string{"https://play.example", "https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.ParallelSearch)
	assert.Equal(t, "probabilistic", cfg.BotStrategy)
}

func TestGetEnvHelpers_InvalidFallsBack(t *testing.T) {
	t.Setenv("FLEXFOUR_INT", "abc")
	t.Setenv("FLEXFOUR_BOOL", "maybe")

	assert.Equal(t, 7, GetEnvAsInt("FLEXFOUR_INT", 7))
	assert.True(t, GetEnvAsBool("FLEXFOUR_BOOL", true))
	assert.Equal(t, "x", GetEnv("FLEXFOUR_UNSET", "x"))
}
