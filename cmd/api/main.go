// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

// Command api is the entry point for the HomeQuest HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to MongoDB.
//  4. Connect to Redis.
//  5. Ensure unique indexes (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/homequest/homequest/internal/api"
	"github.com/homequest/homequest/internal/identity"
	"github.com/homequest/homequest/internal/platform/config"
	"github.com/homequest/homequest/internal/platform/constants"
	"github.com/homequest/homequest/internal/platform/mongodb"
	redisstore "github.com/homequest/homequest/internal/platform/redis"
	"github.com/homequest/homequest/internal/resource"
	"github.com/homequest/homequest/internal/session"
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

	log.Info("[HomeQuest] service_initializing")

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
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. MongoDB ────────────────────────────────────────────────────────
	database, err := mongodb.NewDatabase(startupCtx, cfg.Mongo, log)
	must(log, err, "connect to mongodb")
	defer func() {
		log.Info("closing mongodb client")
		if derr := database.Client().Disconnect(context.Background()); derr != nil {
			log.Error("mongodb disconnect error", slog.Any("error", derr))
		}
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

	// ── 5. Indexes ────────────────────────────────────────────────────────
	// The unique indexes on identities.email and sessions.email carry the
	// uniqueness invariants. They must exist before the first request.
	identityStore := identity.NewMongoStore(database)
	must(log, identityStore.EnsureIndexes(startupCtx), "ensure identity indexes")

	sessionStore := session.NewMongoStore(database)
	must(log, sessionStore.EnsureIndexes(startupCtx), "ensure session indexes")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return mongodb.Ping(context.Background(), database.Client())
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	registry := identity.NewRegistry(identityStore)
	identityHandler := identity.NewHandler(registry)

	attemptStore := session.NewRedisAttemptStore(rdb)
	sessionManager := session.NewManager(sessionStore, attemptStore, registry, log)
	sessionHandler := session.NewHandler(sessionManager)

	listingRepository := resource.NewMongoRepository(database, constants.CollectionListings)
	listingHandler := resource.NewHandler(resource.NewService(listingRepository, "listing", log))

	bookingRepository := resource.NewMongoRepository(database, constants.CollectionBookings)
	bookingHandler := resource.NewHandler(resource.NewService(bookingRepository, "booking", log))

	// ── 8. Metrics ────────────────────────────────────────────────────────
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Identity:  identityHandler,
		Session:   sessionHandler,
		Listing:   listingHandler,
		Booking:   bookingHandler,
	}

	server := api.NewServer(serverCtx, cfg, log, promRegistry, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
