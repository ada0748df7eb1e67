// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Folio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire services and HTTP handlers.
//  7. Schedule the expired-session purge.
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

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/core/article"
	"github.com/taibuivan/folio/internal/core/category"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/migration"
	pgstore "github.com/taibuivan/folio/internal/platform/postgres"
	redisstore "github.com/taibuivan/folio/internal/platform/redis"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("unique_policy", cfg.UniquePolicy),
	)

	// Root context for startup. A deadline catches misconfiguration quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process; cancelled on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	helper := query.NewHelper(store.NewPostgresStore(pool), cfg.UniquePolicy)

	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.TokenTTL)
	must(log, err, "initialize token service")

	sessionRepository := auth.NewSessionRepository(helper)
	authService := auth.NewService(
		auth.NewUserRepository(helper),
		sessionRepository,
		auth.NewResetTokenRepository(rdb),
		tokens,
		auth.WithUnitOfWork(auth.NewUnitOfWork(helper)),
		auth.WithBcryptCost(cfg.BcryptCost),
		auth.WithResetTokenTTL(cfg.ResetTokenTTL),
	)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, cfg.IsDevelopment()),
		Users:      account.NewHandler(account.NewService(helper, sessionRepository, cfg.BcryptCost, log)),
		Categories: category.NewHandler(category.NewService(helper, log)),
		Articles:   article.NewHandler(article.NewService(helper, log)),
		Projects:   project.NewHandler(project.NewService(helper, log)),
	}

	// ── 7. Background Jobs ────────────────────────────────────────────────
	cleaner := auth.NewSessionCleaner(authService, redisstore.NewLocker(rdb), log)
	must(log, cleaner.Start(appCtx, cfg.SessionCleanupSchedule), "schedule session cleanup")
	defer cleaner.Stop()

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, authService, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
	}
	appCancel()

	log.Info("server_stopped")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
