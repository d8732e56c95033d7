package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionKey(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*3600)
	// 01:30 по Москве, по UTC еще 14 января
	date := time.Date(2026, time.January, 15, 1, 30, 0, 0, moscow)

	assert.Equal(t, "convert:2026-01-14:time=15%3A00%3A00&timezone=Asia%2FYekaterinburg",
		ConversionKey(date, " 15:00:00 ", "Asia/Yekaterinburg "))
	assert.NotEqual(t, ConversionKey(date, "15:00:00", "Europe/Berlin"), ConversionKey(date, "15:00:00", "europe/berlin"))
	// Двоеточие в значениях не должно склеивать разные запросы
	assert.NotEqual(t, ConversionKey(date, "12:00", "Moscow"), ConversionKey(date, "12", "00:Moscow"))
}

func TestTTLUntilNextUTCDay(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Duration
	}{
		{"midnight", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{"evening", time.Date(2026, 1, 15, 22, 30, 0, 0, time.UTC), 90 * time.Minute},
		{"end of month", time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC), time.Minute},
		{"non UTC input", time.Date(2026, 1, 15, 2, 0, 0, 0, time.FixedZone("YEKT", 5*3600)), 3 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TTLUntilNextUTCDay(tt.now))
		})
	}
}

func TestNextReconnectInterval(t *testing.T) {
	assert.Equal(t, 10*time.Second, nextReconnectInterval(5*time.Second))
	assert.Equal(t, maxReconnectInterval, nextReconnectInterval(4*time.Minute))
}

func TestServiceWithoutClientIsUnavailable(t *testing.T) {
	s := &ConversionCacheService{}

	_, err := s.Get(context.Background(), "convert:key")
	require.Error(t, err)
	assert.True(t, IsRedisUnavailable(err))
	assert.False(t, errors.Is(err, ErrCacheMiss))

	err = s.Set(context.Background(), "convert:key", []byte("{}"), time.Minute)
	assert.True(t, IsRedisUnavailable(err))

	assert.NoError(t, s.Close())
}

func TestNewRedisConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_DIAL_TIMEOUT", "750ms")

	cfg := NewRedisConfigFromEnv()
	assert.Equal(t, "cache.internal", cfg.Host)
	assert.Equal(t, "6380", cfg.Port)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 750*time.Millisecond, cfg.DialTimeout)
	assert.Equal(t, 10, cfg.PoolSize)
}
