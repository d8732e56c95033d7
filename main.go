package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esemashko/v2-service-time/clock"
	"github.com/esemashko/v2-service-time/config"
	"github.com/esemashko/v2-service-time/redis"
	"github.com/esemashko/v2-service-time/server"
	"github.com/esemashko/v2-service-time/services/timeconv"
	"github.com/esemashko/v2-service-time/utils"
	"github.com/esemashko/v2-service-time/zoneinfo"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env-file", ".env", "Path to .env file")
	port := flag.StringP("port", "p", "", "HTTP port (overrides APP_PORT)")
	listAliases := flag.Bool("list-aliases", false, "Print the city alias table as JSON and exit")
	flag.Parse()

	// Load environment variables BEFORE initializing logger
	if err := godotenv.Load(*envFile); err != nil {
		// Use fmt for initial logging since logger is not initialized yet
		fmt.Printf("No .env file found, using environment variables: %v\n", err)
	}

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}

	utils.InitLogger(cfg.IsProduction())
	defer utils.Logger.Sync()

	if *listAliases {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(timeconv.DefaultAliases().Entries()); err != nil {
			utils.Logger.Fatal("Error printing alias table", zap.Error(err))
		}
		return
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	runWebServerWithGracefulShutdown(cfg, shutdown)
}

func runWebServerWithGracefulShutdown(cfg *config.Config, shutdown chan os.Signal) {
	zones := zoneinfo.NewProvider()
	if err := zones.Available(); err != nil {
		// Сервис поднимается, но /convert-time будет отвечать 500
		utils.Logger.Error("Timezone database is unavailable", zap.Error(err))
	} else if err := timeconv.DefaultAliases().Validate(zones); err != nil {
		utils.Logger.Fatal("Alias table references unknown timezones", zap.Error(err))
	}

	clk := clock.System{}
	deps := server.Dependencies{
		Clock:     clk,
		Zones:     zones,
		Converter: timeconv.NewService(clk, zones, timeconv.DefaultAliases()),
	}

	var cache *redis.ConversionCacheService
	if cfg.CacheEnabled {
		cache = redis.NewConversionCacheService(redis.NewRedisConfigFromEnv())
		deps.Cache = cache
	}

	router, err := server.SetupRouter(deps)
	if err != nil {
		utils.Logger.Fatal("Failed to setup router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		utils.Logger.Info("Server started",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Int("aliases", timeconv.DefaultAliases().Len()),
			zap.Bool("cache", cfg.CacheEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal("Server startup failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	<-shutdown
	utils.Logger.Info("Shutdown signal received, gracefully shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// 1. Сначала останавливаем HTTP-сервер
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Error("Server shutdown error", zap.Error(err))
	} else {
		utils.Logger.Info("Server shutdown complete")
	}

	// 2. Закрываем Redis-соединение
	if cache != nil {
		if err := cache.Close(); err != nil {
			utils.Logger.Error("Redis shutdown error", zap.Error(err))
		} else {
			utils.Logger.Info("Redis shutdown complete")
		}
	}

	utils.Logger.Info("Graceful shutdown complete")
	if err := utils.Logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing logs: %v\n", err)
	}
}
