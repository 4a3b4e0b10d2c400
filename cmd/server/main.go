package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gosepa/internal/adapter/http"
	"github.com/iho/gosepa/internal/adapter/http/handler"
	postgresRepo "github.com/iho/gosepa/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gosepa/internal/adapter/repository/redis"
	"github.com/iho/gosepa/internal/builder"
	"github.com/iho/gosepa/internal/infrastructure/config"
	"github.com/iho/gosepa/internal/infrastructure/logger"
	"github.com/iho/gosepa/internal/infrastructure/metrics"
	"github.com/iho/gosepa/internal/infrastructure/postgres"
	"github.com/iho/gosepa/internal/infrastructure/redis"
	"github.com/iho/gosepa/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	batchRepo := postgresRepo.NewBatchRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	documentRepo := postgresRepo.NewDocumentRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	m := metrics.New()

	// Initialize use cases
	batchUC := usecase.NewBatchUseCase(txManager, batchRepo, transferRepo, idGen, retrier, m)
	documentUC := usecase.NewDocumentUseCase(batchRepo, transferRepo, documentRepo, builder.NewRenderer(), idGen, cache, m)

	// Initialize handlers
	batchHandler := handler.NewBatchHandler(batchUC)
	documentHandler := handler.NewDocumentHandler(documentUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BatchHandler:     batchHandler,
		DocumentHandler:  documentHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Metrics:          m,
		Logger:           log.Logger,
		RateLimit:        cfg.RateLimit,
		RateBurst:        cfg.RateBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
