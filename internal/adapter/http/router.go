package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gosepa/internal/adapter/http/handler"
	"github.com/iho/gosepa/internal/adapter/http/middleware"
	"github.com/iho/gosepa/internal/infrastructure/metrics"
	"github.com/iho/gosepa/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BatchHandler     *handler.BatchHandler
	DocumentHandler  *handler.DocumentHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
	RateLimit        float64
	RateBurst        int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/batches", func(r chi.Router) {
			r.Post("/", cfg.BatchHandler.Create)
			r.Get("/", cfg.BatchHandler.List)
			r.Get("/{id}", cfg.BatchHandler.Get)
			r.Post("/{id}/transfers", cfg.BatchHandler.AddTransfers)
			r.Get("/{id}/transfers", cfg.BatchHandler.ListTransfers)
			r.Post("/{id}/document", cfg.DocumentHandler.Generate)
			r.Get("/{id}/document", cfg.DocumentHandler.Get)
			r.Get("/{id}/document/download", cfg.DocumentHandler.Download)
		})
	})

	return r
}
