package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/esemashko/v2-service-time/clock"
	"github.com/esemashko/v2-service-time/middleware"
	"github.com/esemashko/v2-service-time/services/timeconv"
	"github.com/esemashko/v2-service-time/utils"
	"github.com/esemashko/v2-service-time/zoneinfo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Version версия API, отдается в корневом эндпоинте
const Version = "1.0.0"

// ResponseCache хранилище готовых ответов /convert-time
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Dependencies зависимости HTTP-слоя
type Dependencies struct {
	Clock     clock.Clock
	Zones     *zoneinfo.Provider
	Converter *timeconv.Service
	// Cache может быть nil, тогда ответы не кешируются
	Cache ResponseCache
}

func (d *Dependencies) validate() error {
	switch {
	case d.Clock == nil:
		return errors.New("server: clock is required")
	case d.Zones == nil:
		return errors.New("server: zone provider is required")
	case d.Converter == nil:
		return errors.New("server: converter is required")
	}
	return nil
}

// SetupRouter собирает chi-роутер со всеми эндпоинтами API
func SetupRouter(deps Dependencies) (*chi.Mux, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	// i18n initialization
	bundle, err := InitI18n()
	if err != nil {
		return nil, err
	}
	utils.SetI18nBundle(bundle)

	r := chi.NewRouter()

	r.Use(middleware.RequestLoggingMiddleware)
	r.Use(middleware.LanguageMiddleware)
	r.Use(middleware.RecoverMiddleware)

	// Global CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Language"},
		MaxAge:         300,
	}))

	h := &handlers{
		clock:     deps.Clock,
		zones:     deps.Zones,
		converter: deps.Converter,
		cache:     deps.Cache,
	}

	r.Get("/", h.root)
	r.Get("/time", h.serverTime)
	r.Get("/date", h.serverDate)
	r.Get("/convert-time", h.convertTime)
	r.Get("/timezones", h.timezones)
	r.Get("/health", h.health)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	return r, nil
}
