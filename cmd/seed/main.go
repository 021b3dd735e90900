package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	analyticsadapters "leadswift_backend/internal/feature/analytics/adapters"
	analyticsusecase "leadswift_backend/internal/feature/analytics/usecase"
	"leadswift_backend/internal/platform/cache"
	infradb "leadswift_backend/internal/platform/db"
	"leadswift_backend/internal/platform/logging"
	infraredis "leadswift_backend/internal/platform/redis"
)

// seed は分析画面の指標カタログを書き込み、キャッシュを無効化します。
func main() {
	logging.Setup(logging.LoadConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), analyticsadapters.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	var rdb redisv9.Cmdable
	if client, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err == nil {
		defer func() { _ = client.Close() }()
		rdb = client
	}

	repo := cache.NewCachingMetricRepository(rdb, cache.DefaultMetricTTL, analyticsadapters.NewMetricSQL(db), "metrics")
	uc := analyticsusecase.NewAnalyticsUsecase(repo)

	n, err := uc.Seed(ctx)
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed ok", "metrics", n)
}
