// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"leadswift_backend/internal/app/router"
	analyticsadapters "leadswift_backend/internal/feature/analytics/adapters"
	analyticshandler "leadswift_backend/internal/feature/analytics/transport/handler"
	analyticsusecase "leadswift_backend/internal/feature/analytics/usecase"
	authadapters "leadswift_backend/internal/feature/auth/adapters"
	authhandler "leadswift_backend/internal/feature/auth/transport/handler"
	authusecase "leadswift_backend/internal/feature/auth/usecase"
	complianceadapters "leadswift_backend/internal/feature/compliance/adapters"
	compliancehandler "leadswift_backend/internal/feature/compliance/transport/handler"
	complianceusecase "leadswift_backend/internal/feature/compliance/usecase"
	pitchadapters "leadswift_backend/internal/feature/pitch/adapters"
	pitchhandler "leadswift_backend/internal/feature/pitch/transport/handler"
	pitchusecase "leadswift_backend/internal/feature/pitch/usecase"
	settingsadapters "leadswift_backend/internal/feature/settings/adapters"
	settingshandler "leadswift_backend/internal/feature/settings/transport/handler"
	settingsusecase "leadswift_backend/internal/feature/settings/usecase"
	"leadswift_backend/internal/platform/cache"
	"leadswift_backend/internal/platform/config"
	platformhandler "leadswift_backend/internal/platform/http/handler"
	jwtmw "leadswift_backend/internal/platform/jwt"
	"leadswift_backend/internal/platform/metrics"
	"leadswift_backend/internal/platform/scheduler"
	"leadswift_backend/internal/shared/ratelimiter"
)

// Models returns every table the application migrates.
func Models() []any {
	var models []any
	models = append(models, authadapters.Models()...)
	models = append(models, pitchadapters.Models()...)
	models = append(models, analyticsadapters.Models()...)
	models = append(models, settingsadapters.Models()...)
	return models
}

// Deps are the externally created resources the application is built from.
// Redis, Metrics and Identity are optional.
type Deps struct {
	Config    config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Metrics   *metrics.Metrics
	Generator pitchusecase.PitchGenerator
	Identity  authusecase.IdentityProvider
}

// App is the wired application.
type App struct {
	Handlers router.Handlers
	// Sessions is run by the cleanup job.
	Sessions scheduler.SessionCleaner
	// Metrics seeds the analytics catalog at startup.
	Metrics MetricSeeder
}

// MetricSeeder seeds the analytics catalog.
type MetricSeeder interface {
	SeedIfEmpty(ctx context.Context) error
}

// Build wires repositories, usecases and handlers.
func Build(d Deps) *App {
	cfg := d.Config

	// Repository
	userRepo := authadapters.NewUserSQL(d.DB)
	sessionRepo := NewSessionRepository(d.Redis, d.DB)
	pitchRepo := pitchadapters.NewPitchSQL(d.DB)
	settingsRepo := settingsadapters.NewSettingsSQL(d.DB)

	// Redisキャッシュでラップ（nilの場合は素通し）
	var cacheClient redis.Cmdable
	if d.Redis != nil {
		cacheClient = d.Redis
	}
	metricRepo := cache.NewCachingMetricRepository(cacheClient, cache.DefaultMetricTTL,
		analyticsadapters.NewMetricSQL(d.DB), "metrics")

	// Usecase
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, authusecase.Config{
		AccessTTL:  jwtGen.Expiration(),
		RefreshTTL: cfg.RefreshTTL,
	})
	var observer pitchusecase.GenerationObserver
	if d.Metrics != nil {
		observer = d.Metrics
	}
	limiter := ratelimiter.NewRateLimiter("pitch-"+d.Generator.Name(), cfg.PitchRatePerMinute, time.Minute)
	pitchUC := pitchusecase.NewPitchUsecase(pitchRepo, d.Generator, limiter, observer)
	analyticsUC := analyticsusecase.NewAnalyticsUsecase(metricRepo)
	complianceUC := complianceusecase.NewComplianceUsecase(complianceadapters.NewScanLRU(0, 0), 0)
	settingsUC := settingsusecase.NewSettingsUsecase(settingsRepo)

	// Handler
	h := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Pitch:      pitchhandler.NewPitchHandler(pitchUC),
		Analytics:  analyticshandler.NewAnalyticsHandler(analyticsUC),
		Compliance: compliancehandler.NewComplianceHandler(complianceUC),
		Settings:   settingshandler.NewSettingsHandler(settingsUC),
		Ready:      platformhandler.NewReadinessHandler(readinessChecks(d.DB, d.Redis)),
	}
	if d.Identity != nil {
		h.OIDC = authhandler.NewOIDCHandler(authusecase.NewIdentityUsecase(d.Identity, authUC), cfg.FrontendURL)
	}
	if d.Metrics != nil {
		h.Metrics = d.Metrics
	}

	return &App{Handlers: h, Sessions: authUC, Metrics: analyticsUC}
}

func readinessChecks(db *gorm.DB, rdb *redis.Client) map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
