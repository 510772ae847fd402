package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appuser "usersvc/internal/app/user"
	"usersvc/internal/cache"
	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/db/repository"
	"usersvc/internal/http/handlers/health"
	userhandler "usersvc/internal/http/handlers/user"
	"usersvc/internal/http/responses"
	"usersvc/internal/http/router"
	"usersvc/internal/kafka"
	"usersvc/internal/logging"
	"usersvc/internal/telemetry"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Initialize logger
	logger := logging.New(cfg.AppName, cfg.Env, cfg.Debug)

	logger.Info("starting service",
		"env", cfg.Env,
		"debug", cfg.Debug,
	)

	// 3) Initialize telemetry (OpenTelemetry)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, cfg.Env, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// 4) Initialize Postgres. A missing DSN is a configuration fault and
	// stops the process here rather than on the first request.
	dbClient, err := db.NewClient(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = dbClient.Close()
	}()

	// Dev convenience: create the users table. Production schemas are
	// managed outside the service.
	if cfg.IsDev() {
		if err := dbClient.CreateSchema(ctx); err != nil {
			logger.Error("failed to create schema", "error", err)
			os.Exit(1)
		}
	}

	// 5) Initialize Redis (optional)
	userCache := cache.UserCache(cache.NoopUserCache{})
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		userCache = cache.NewUserCache(redisClient)
	}

	// 6) Initialize Kafka bus (Watermill)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()

	// 7) Kafka router (for consumers)
	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka router", "error", err)
		os.Exit(1)
	}

	// 8) Construct repositories & services
	userRepo := repository.NewUserRepository(dbClient, logger)
	userEvents := kafka.NewUserEvents(bus, cfg.Kafka, logger)

	userService := appuser.NewService(
		userRepo,
		userCache,
		dbClient, // db.Transactor
		userEvents,
		logger,
	)

	// 9) HTTP handlers
	faults := responses.NewFaultWriter(cfg.Debug, logger)
	healthHandler := health.NewHandler()
	userHandler := userhandler.NewHandler(userService, faults, logger)

	// 10) HTTP router
	httpRouter := router.NewRouter(cfg, logger, healthHandler, userHandler)

	// 11) HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: otelhttp.NewHandler(httpRouter, cfg.AppName),
	}

	// 12) Start concurrent processes (HTTP server, Kafka router)
	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
			"api_prefix", cfg.APIPrefix,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// 13) Wait for shutdown signal or an error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from subsystem", "error", err)
		stop()
	}

	// 14) Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}
