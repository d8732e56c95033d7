package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger глобальный логгер сервиса. До вызова InitLogger пишет в никуда,
// поэтому пакеты можно использовать в тестах без инициализации.
var Logger = zap.NewNop()

// InitLogger init logger. production переключает JSON-вывод с уровнем Info,
// иначе цветной console-вывод с уровнем Debug.
func InitLogger(production bool) {
	config := zap.NewProductionConfig()

	// Set output path
	config.OutputPaths = []string{"stdout"}

	// Set time format
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Set log level depending on environment
	if production {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		config.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	} else {
		// For local development
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// LOG_LEVEL перекрывает уровень по окружению
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if level, err := zapcore.ParseLevel(raw); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		panic(err)
	}
	Logger = logger
}
