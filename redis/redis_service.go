package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/esemashko/v2-service-time/config"
	"github.com/esemashko/v2-service-time/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	prefixConversion         = "convert:"
	initialReconnectInterval = 5 * time.Second // Начальный интервал для переподключения
	maxReconnectInterval     = 5 * time.Minute // Максимальный интервал для переподключения
	reconnectMultiplier      = 2               // Множитель для экспоненциального backoff
)

// ErrCacheMiss ключа нет в кеше
var ErrCacheMiss = errors.New("cache miss")

// RedisUnavailableError represents an error when Redis is unavailable
type RedisUnavailableError struct {
	Err error
}

func (e *RedisUnavailableError) Error() string {
	return fmt.Sprintf("redis is unavailable: %v", e.Err)
}

func (e *RedisUnavailableError) Unwrap() error {
	return e.Err
}

// IsRedisUnavailable checks if the error is RedisUnavailableError
func IsRedisUnavailable(err error) bool {
	var target *RedisUnavailableError
	return errors.As(err, &target)
}

// RedisConfig stores Redis configuration parameters
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisConfigFromEnv creates Redis configuration from environment variables
func NewRedisConfigFromEnv() *RedisConfig {
	return &RedisConfig{
		Host:         config.GetEnvWithDefault("REDIS_HOST", "localhost"),
		Port:         config.GetEnvWithDefault("REDIS_PORT", "6379"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           config.GetEnvInt("REDIS_DB", 0),
		PoolSize:     config.GetEnvInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: config.GetEnvInt("REDIS_MIN_IDLE_CONNS", 2),
		MaxRetries:   config.GetEnvInt("REDIS_MAX_RETRIES", 1),
		DialTimeout:  config.GetEnvDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
		ReadTimeout:  config.GetEnvDuration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
		WriteTimeout: config.GetEnvDuration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
	}
}

// ConversionCacheService кеширует готовые ответы /convert-time.
// Если Redis недоступен, методы возвращают RedisUnavailableError, а фоновая
// горутина пытается переподключиться.
type ConversionCacheService struct {
	client       *redis.Client
	config       *RedisConfig
	mu           sync.RWMutex
	healthCtx    context.Context
	healthCancel context.CancelFunc
	wg           sync.WaitGroup
}

// NewConversionCacheService создает сервис и запускает проверку соединения
func NewConversionCacheService(cfg *RedisConfig) *ConversionCacheService {
	s := &ConversionCacheService{config: cfg}
	s.healthCtx, s.healthCancel = context.WithCancel(context.Background())

	// Пытаемся установить начальное соединение
	if client, err := newRedisClient(cfg); err == nil {
		s.setClient(client)
	}

	s.wg.Add(1)
	go s.healthCheckLoop()

	return s
}

// ConversionKey ключ ответа для даты UTC, нормализованного времени HH:MM:SS и зоны.
// Параметры кодируются как query-строка, чтобы ':' в значениях не склеивал
// разные запросы. Регистр зоны сохраняется: идентификаторы IANA к нему чувствительны.
func ConversionKey(date time.Time, timeOfDay, rawZone string) string {
	params := url.Values{}
	params.Set("time", strings.TrimSpace(timeOfDay))
	params.Set("timezone", strings.TrimSpace(rawZone))
	return prefixConversion + date.UTC().Format("2006-01-02") + ":" + params.Encode()
}

// TTLUntilNextUTCDay время жизни ответа: до следующей полуночи UTC
func TTLUntilNextUTCDay(now time.Time) time.Duration {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return midnight.Sub(now)
}

// Get возвращает сохраненный ответ или ErrCacheMiss
func (s *ConversionCacheService) Get(ctx context.Context, key string) ([]byte, error) {
	client := s.getClient()
	if client == nil {
		return nil, &RedisUnavailableError{Err: fmt.Errorf("redis client is nil")}
	}

	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, &RedisUnavailableError{Err: err}
	}
	return data, nil
}

// Set сохраняет ответ на ttl
func (s *ConversionCacheService) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	client := s.getClient()
	if client == nil {
		return &RedisUnavailableError{Err: fmt.Errorf("redis client is nil")}
	}

	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		utils.Logger.Warn("Failed to cache conversion in Redis",
			zap.Error(err),
			zap.String("cache_key", key),
		)
		return &RedisUnavailableError{Err: err}
	}

	utils.Logger.Debug("Conversion cached in Redis",
		zap.String("cache_key", key),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// Close closes Redis connection and stops the health check
func (s *ConversionCacheService) Close() error {
	if s.healthCancel != nil {
		s.healthCancel()
	}
	// Дожидаемся завершения горутины мониторинга
	s.wg.Wait()

	client := s.getClient()
	if client == nil {
		return nil
	}
	s.setClient(nil)
	return client.Close()
}

// healthCheckLoop периодически проверяет доступность Redis и восстанавливает соединение при необходимости
func (s *ConversionCacheService) healthCheckLoop() {
	defer s.wg.Done()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	currentInterval := initialReconnectInterval
	ticker := time.NewTicker(currentInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			client := s.getClient()
			if client == nil {
				utils.Logger.Debug("Attempting to reconnect to Redis",
					zap.Duration("interval", currentInterval))

				if newClient, err := newRedisClient(s.config); err == nil {
					s.setClient(newClient)
					utils.Logger.Info("Successfully reconnected to Redis")
					currentInterval = initialReconnectInterval
					ticker.Reset(currentInterval)
					continue
				}

				currentInterval = nextReconnectInterval(currentInterval)
				// Джиттер ±10%
				jitter := time.Duration(rnd.Int63n(int64(currentInterval/5))) - currentInterval/10
				ticker.Reset(currentInterval + jitter)
				continue
			}

			ctx, cancel := context.WithTimeout(s.healthCtx, 2*time.Second)
			if err := client.Ping(ctx).Err(); err != nil {
				utils.Logger.Warn("Redis connection is unhealthy, closing and will attempt to reconnect",
					zap.Error(err))
				_ = client.Close()
				s.setClient(nil)
				currentInterval = initialReconnectInterval
				ticker.Reset(currentInterval)
			}
			cancel()
		case <-s.healthCtx.Done():
			utils.Logger.Debug("Redis health check loop stopped")
			return
		}
	}
}

func nextReconnectInterval(current time.Duration) time.Duration {
	next := current * reconnectMultiplier
	if next > maxReconnectInterval {
		return maxReconnectInterval
	}
	return next
}

func (s *ConversionCacheService) setClient(client *redis.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

func (s *ConversionCacheService) getClient() *redis.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// newRedisClient creates new Redis client instance
func newRedisClient(cfg *RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		utils.Logger.Warn("Redis is not available",
			zap.Error(err),
			zap.String("addr", opts.Addr),
		)
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	utils.Logger.Info("Successfully connected to Redis",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Int("pool_size", opts.PoolSize),
	)
	return client, nil
}
