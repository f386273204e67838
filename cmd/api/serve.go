package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"medicine-reminder/internal/adapters/auth/jwtauth"
	rediscache "medicine-reminder/internal/adapters/cache/redis"
	"medicine-reminder/internal/adapters/generation/openai"
	pg "medicine-reminder/internal/adapters/storage/postgres"
	"medicine-reminder/internal/config"
	"medicine-reminder/internal/domain/schedule"
	"medicine-reminder/internal/jobs"
	"medicine-reminder/internal/platform/logger"
	"medicine-reminder/internal/platform/metrics"
	"medicine-reminder/internal/platform/ratelimit"
	"medicine-reminder/internal/ports/auth"
	"medicine-reminder/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and background jobs",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres si hay DSN, si no in-memory.
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := pg.Migrate(ctx, db); err != nil {
			return err
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.IsDevAuth() {
		log.Warn("JWT_SECRET not set, dev auth via X-Debug-User-ID", nil)
	} else {
		v, err := jwtauth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			return err
		}
		verifier = v
	}

	gen, err := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	})
	if err != nil {
		return err
	}
	if !gen.IsConfigured() {
		log.Warn("OPENAI_API_KEY not set, serving demo schedules", nil)
	}

	var cache schedule.Cache
	if cfg.RedisAddr != "" {
		rdb, err := rediscache.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			// la cache es opcional: seguimos sin ella
			log.Warn("redis unavailable, schedule cache disabled", map[string]any{"error": err})
		} else {
			defer rdb.Close()
			cache = rediscache.NewScheduleCache(rdb, cfg.ScheduleCacheTTL)
		}
	}

	limiter := ratelimit.New(cfg.AIRatePerSec, cfg.AIRateBurst)
	limiter.OnReject = func(string) { metrics.RateLimited.Inc() }

	opts := router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Generator:    gen,
		Cache:        cache,
		Limiter:      limiter,
		Logger:       log,
	}
	svcs := router.NewServices(opts)

	jobOpts := jobs.Options{
		ResetAt: cfg.StatusResetAt,
		Cleaner: limiter,
		Logger:  log,
	}
	if cfg.StatusResetEnabled {
		jobOpts.Resetter = svcs.Medicines
	}
	sched := jobs.NewScheduler(jobOpts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Mount(opts, svcs),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// generate puede esperar al modelo hasta OPENAI_TIMEOUT
		WriteTimeout: cfg.OpenAITimeout + 10*time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := sched.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		sched.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}
