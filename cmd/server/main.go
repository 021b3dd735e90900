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

	redisv9 "github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"

	"leadswift_backend/internal/app/di"
	"leadswift_backend/internal/app/router"
	authusecase "leadswift_backend/internal/feature/auth/usecase"
	"leadswift_backend/internal/platform/config"
	infradb "leadswift_backend/internal/platform/db"
	infrahttp "leadswift_backend/internal/platform/http"
	"leadswift_backend/internal/platform/logging"
	"leadswift_backend/internal/platform/metrics"
	"leadswift_backend/internal/platform/oidc"
	infraredis "leadswift_backend/internal/platform/redis"
	"leadswift_backend/internal/platform/scheduler"
)

func main() {
	logging.Setup(logging.LoadConfig())
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	// JWT_SECRETチェック（未設定ではトークンを発行できない）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Login and authenticated routes will fail.")
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), di.Models()...)
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Running without cache; sessions are stored in the database.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	gen, err := di.NewPitchGenerator(ctx, cfg.PitchProvider)
	if err != nil {
		return err
	}
	slog.Info("pitch generator configured", "provider", gen.Name())

	// IdP（設定されている場合のみ）
	var identity authusecase.IdentityProvider
	if oc := oidc.LoadConfig(); oc.Enabled() {
		p, err := oidc.NewProvider(ctx, oc, infrahttp.NewHTTPClient(10*time.Second))
		if err != nil {
			return err
		}
		identity = p
	}

	app := di.Build(di.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Metrics:   metrics.New(),
		Generator: gen,
		Identity:  identity,
	})
	if err := app.Metrics.SeedIfEmpty(ctx); err != nil {
		return err
	}

	// 定期ジョブ
	jobs := scheduler.New()
	if err := jobs.AddSessionCleanup(scheduler.SessionCleanupSpec(), app.Sessions); err != nil {
		return err
	}
	jobs.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(app.Handlers, router.Options{JWTSecret: cfg.JWTSecret, CORSOrigins: cfg.CORSOrigins}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		jobs.Stop(shutdownCtx)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
