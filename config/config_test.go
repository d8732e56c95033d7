package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("GO_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("CACHE_ENABLED", "")

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.CacheEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("GO_ENV", "")
	t.Setenv("ENV", "production")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CACHE_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.CacheEnabled)
}

func TestGoEnvTakesPrecedence(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("ENV", "development")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.IsProduction())
}

func TestEnvHelpersFallbackOnGarbage(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_BOOL", "maybe")

	assert.Equal(t, 7, GetEnvInt("TEST_INT", 7))
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_DURATION", time.Minute))
	assert.True(t, GetEnvBool("TEST_BOOL", true))
}
