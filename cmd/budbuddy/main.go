// Copyright (c) 2026 BudCenter. All rights reserved.

// Command budbuddy is the entry point for the BudBuddy Discord bot.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Wire feature modules into the interaction router.
//  7. Start the ops server and the gateway, then wait for a signal.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/budcenter/budbuddy/internal/api"
	"github.com/budcenter/budbuddy/internal/core/puff"
	"github.com/budcenter/budbuddy/internal/core/strain"
	"github.com/budcenter/budbuddy/internal/core/utility"
	"github.com/budcenter/budbuddy/internal/discord"
	"github.com/budcenter/budbuddy/internal/platform/config"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/migration"
	pgstore "github.com/budcenter/budbuddy/internal/platform/postgres"
	redisstore "github.com/budcenter/budbuddy/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("[BudBuddy] bot_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.Bool("cache_enabled", cfg.CacheEnabled()),
		slog.Int("owners", len(cfg.OwnerIDs)),
	)

	// Root context: cancelled by SIGINT/SIGTERM.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	strainRepository := strain.NewPostgresRepository(pool)
	var detailCache strain.DetailCache
	if rdb != nil {
		detailCache = strain.NewRedisDetailCache(rdb, log)
	}
	strainService := strain.NewService(strainRepository, detailCache, log)
	suggestions := strain.NewSuggestions(strainRepository, log)
	strainHandler := strain.NewHandler(strainService, suggestions)

	puffService := puff.NewService(puff.NewPostgresRepository(pool), log)
	puffHandler := puff.NewHandler(puffService, puff.NewPrompts(constants.ResetConfirmWindow))

	// ── 7. Discord ────────────────────────────────────────────────────────
	session, err := discord.NewSession(cfg.DiscordToken)
	must(log, err, "create discord session")

	router := discord.NewRouter(log, cfg, discord.NewReporter(session, cfg.ErrorChannelID))
	router.Use(
		discord.Timeout(constants.CommandTimeout),
		discord.NewRateLimiter(rootCtx, constants.CommandRateLimitPerSecond, constants.CommandRateLimitBurst).Middleware(),
		discord.Blacklist(puffService),
		discord.PanicRecovery(),
	)

	bot := discord.NewBot(session, router, log)
	if cfg.SyncOnStart {
		bot.SyncOnReady(cfg.StartupSyncGuild())
	}

	router.Register(
		strainHandler,
		puffHandler,
		utility.NewHandler(bot, router, bot, cfg.DevGuildID),
	)

	// ── 8. Ops Server ─────────────────────────────────────────────────────
	checks := []api.Check{
		{Name: "postgres", Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "gateway", Probe: bot.Check},
	}
	if rdb != nil {
		checks = append(checks, api.Check{Name: "redis", Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }})
	}

	liveness, readiness := api.NewHealthHandlers(checks, log)
	server := api.NewServer(cfg.OpsPort, log, api.Handlers{Liveness: liveness, Readiness: readiness})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ── 9. Gateway ────────────────────────────────────────────────────────
	// Interactions outlive the signal until drained, so they get a context
	// that is only cancelled once shutdown gives up on them.
	interactionCtx, cancelInteractions := context.WithCancel(context.WithoutCancel(rootCtx))
	defer cancelInteractions()

	must(log, bot.Open(interactionCtx), "open discord gateway")
	log.Info("bot_started", slog.Int("commands", len(router.Commands())))

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("ops_server_failed", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	log.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := bot.Shutdown(shutdownCtx); err != nil {
		log.Error("gateway_close_failed", slog.Any("error", err))
	}
	cancelInteractions()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("ops_server_shutdown_failed", slog.Any("error", err))
	}

	log.Info("bot_stopped_cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
