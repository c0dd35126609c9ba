// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Kahani HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the story catalog.
//  4. Connect the optional backends: PostgreSQL (+ migrations), Redis, RabbitMQ.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/kahani/internal/api"
	"github.com/taibuivan/kahani/internal/audio"
	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/engagement"
	"github.com/taibuivan/kahani/internal/feed"
	"github.com/taibuivan/kahani/internal/library"
	"github.com/taibuivan/kahani/internal/platform/config"
	"github.com/taibuivan/kahani/internal/platform/constants"
	"github.com/taibuivan/kahani/internal/platform/middleware"
	"github.com/taibuivan/kahani/internal/platform/migration"
	pgstore "github.com/taibuivan/kahani/internal/platform/postgres"
	redisstore "github.com/taibuivan/kahani/internal/platform/redis"
	"github.com/taibuivan/kahani/internal/platform/sec"
	"github.com/taibuivan/kahani/internal/seo"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("audio_mode", cfg.AudioMode),
	)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Catalog ────────────────────────────────────────────────────────
	stories := catalog.NewStore(catalog.NewFileSource(cfg.CatalogPath, log), log)
	log.Info("catalog_ready", slog.Int("stories", len(stories.All(startupCtx))))

	// ── 4. Engagement Backends ────────────────────────────────────────────
	var (
		store       engagement.Store        = engagement.NewMemoryStore()
		sessions    engagement.SessionStore = engagement.NewMemorySessions()
		health      api.HealthDependencies
		serviceOpts = []engagement.Option{}
	)

	if cfg.DatabaseURL != "" {
		must(log, migration.Up(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.DefaultPoolOptions(), log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("postgres_pool_closing")
			pool.Close()
		}()

		store = engagement.NewPostgresStore(pool)
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
	} else {
		log.Warn("engagement_store_in_memory", slog.String("reason", "DATABASE_URL not set"))
	}

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, redisstore.DefaultClientOptions(), log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("redis_client_closing")
			if closeErr := rdb.Close(); closeErr != nil {
				log.Error("redis_close_failed", slog.Any("error", closeErr))
			}
		}()

		sessions = engagement.NewRedisSessions(rdb)
		serviceOpts = append(serviceOpts, engagement.WithLeaderboardCache(engagement.NewRedisLeaderboardCache(rdb, cfg.LeaderboardTTL)))
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	if cfg.AMQPURL != "" {
		publisher, err := engagement.NewRabbitPublisher(engagement.RabbitConfig{
			URL:        cfg.AMQPURL,
			Exchange:   cfg.AMQPExchange,
			RoutingKey: cfg.AMQPRoutingKey,
			QueueName:  cfg.AMQPQueue,
		}, log)
		must(log, err, "connect to rabbitmq")
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				log.Error("rabbitmq_close_failed", slog.Any("error", closeErr))
			}
		}()

		serviceOpts = append(serviceOpts, engagement.WithPublisher(publisher))
	}

	// ── 5. Identity ───────────────────────────────────────────────────────
	var verifier middleware.TokenVerifier
	if cfg.IdentityJWTSecret != "" {
		tokens, err := sec.NewTokenService(cfg.IdentityJWTSecret, cfg.IdentityJWTIssuer, cfg.IdentityJWTAudience)
		must(log, err, "initialize token verifier")
		verifier = tokens
	} else {
		log.Warn("identity_disabled", slog.String("reason", "IDENTITY_JWT_SECRET not set"))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	site := feed.NewSite(cfg.SiteURL, cfg.SiteTitle, cfg.SiteDescription)
	engagementService := engagement.NewService(store, sessions, stories, log, serviceOpts...)
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Catalog:    catalog.NewHandler(stories),
		Library:    library.NewHandler(stories),
		Engagement: engagement.NewHandler(engagementService),
		SEO:        seo.NewHandler(stories, site),
		Audio:      audio.NewHandler(stories, audio.Mode(cfg.AudioMode), cfg.AudioProxyTimeout),
		Feed:       feed.NewHandler(stories, site),
	}

	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
