package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitalmanagement/backend/internal/adapters/cache"
	"github.com/zatekoja/hospitalmanagement/backend/internal/adapters/database"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/handlers"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/middleware"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/routes"
	"github.com/zatekoja/hospitalmanagement/backend/internal/application/services"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/providers"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/observability"
	"github.com/zatekoja/hospitalmanagement/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client. The application degrades to in-memory
	// sessions when Redis is unavailable.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, sessions held in memory")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters
	accountAdapter := database.NewAccountAdapter(pgClient)
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	bookingAdapter := database.NewBookingAdapter(pgClient)
	auditAdapter := database.NewAuditAdapter(pgClient)
	archiveAdapter := database.NewArchiveAdapter(pgClient)

	// Initialize services
	accountService := services.NewAccountService(accountAdapter)
	sessionService := services.NewSessionService(cacheProvider, cfg.Session.TTL)
	directoryService := services.NewDirectoryService(doctorAdapter)
	bookingService := services.NewBookingService(bookingAdapter, auditAdapter, metrics)
	archiveService := services.NewArchiveService(archiveAdapter)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService, sessionService, cfg.Session.CookieName)
	doctorHandler := handlers.NewDoctorHandler(directoryService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	archiveHandler := handlers.NewArchiveHandler(archiveService)

	authMiddleware := middleware.NewAuthMiddleware(sessionService, cfg.Session.CookieName)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		doctorHandler,
		bookingHandler,
		archiveHandler,
		authMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
