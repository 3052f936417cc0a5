// Copyright (c) 2026 Warehouse 21. All rights reserved.

// Command api is the entry point for the Stockroom HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Seed the default catalog hierarchy (idempotent).
//  7. Wire HTTP handlers, including the optional intake channel.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warehouse21/stockroom/internal/api"
	"github.com/warehouse21/stockroom/internal/catalog"
	"github.com/warehouse21/stockroom/internal/intake"
	"github.com/warehouse21/stockroom/internal/media"
	"github.com/warehouse21/stockroom/internal/platform/config"
	"github.com/warehouse21/stockroom/internal/platform/constants"
	"github.com/warehouse21/stockroom/internal/platform/migration"
	pgstore "github.com/warehouse21/stockroom/internal/platform/postgres"
	redisstore "github.com/warehouse21/stockroom/internal/platform/redis"
	"github.com/warehouse21/stockroom/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("intake_enabled", cfg.IntakeEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Catalog Wiring & Seed ──────────────────────────────────────────
	defaults := catalog.WarehouseDefaults()
	catalogRepository := catalog.NewPostgresRepository(pool)
	must(log, catalog.Seed(startupCtx, catalogRepository, defaults, log), "seed catalog")

	iconStore, err := media.NewStore(cfg.IconDir, log)
	must(log, err, "initialize icon store")

	iconResolver := catalog.NewIconResolver(catalogRepository, defaults)
	catalogService := catalog.NewService(catalogRepository, iconResolver, iconStore, log)
	catalogHandler := catalog.NewHandler(catalogService)

	// ── 7. Auth Wiring ────────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, log)
	authHandler := auth.NewHandler(authService)

	// ── 8. Intake Wiring ──────────────────────────────────────────────────
	// A missing credential disables intake only; catalog mutation stays up.
	var model intake.Model
	if cfg.IntakeEnabled() {
		gemini, err := intake.NewGeminiModel(startupCtx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		must(log, err, "initialize intake model")
		defer func() {
			if cerr := gemini.Close(); cerr != nil {
				log.Error("gemini close error", slog.Any("error", cerr))
			}
		}()
		model = gemini
	} else {
		log.Warn("intake_disabled_no_credential")
	}
	dispatcher := intake.NewDispatcher(model, catalogService, log)
	intakeHandler := intake.NewHandler(dispatcher)

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Catalog:   catalogHandler,
		Intake:    intakeHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
