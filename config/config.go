// Package config читает настройки сервиса из переменных окружения.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "8000"
	defaultShutdownTimeout = 15 * time.Second
)

// Config настройки HTTP-сервиса
type Config struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
	CacheEnabled    bool
}

// IsProduction сообщает, запущен ли сервис в продакшн-окружении
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr адрес для http.Server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load собирает Config из окружения. Вызывать после godotenv.Load.
func Load() *Config {
	return &Config{
		Port:            GetEnvWithDefault("APP_PORT", defaultPort),
		Env:             GetEnvWithDefault("GO_ENV", GetEnvWithDefault("ENV", "development")),
		ShutdownTimeout: GetEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		CacheEnabled:    GetEnvBool("CACHE_ENABLED", false),
	}
}

// GetEnvWithDefault возвращает значение переменной или defaultValue, если она пуста
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration читает time.Duration, при ошибке разбора возвращает defaultValue
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvInt читает целое число, при ошибке разбора возвращает defaultValue
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvBool читает bool в формате strconv.ParseBool, при ошибке возвращает defaultValue
func GetEnvBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
