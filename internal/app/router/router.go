// Package router はHTTPルーティングを組み立てます。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analyticshandler "leadswift_backend/internal/feature/analytics/transport/handler"
	authhandler "leadswift_backend/internal/feature/auth/transport/handler"
	compliancehandler "leadswift_backend/internal/feature/compliance/transport/handler"
	pitchhandler "leadswift_backend/internal/feature/pitch/transport/handler"
	settingshandler "leadswift_backend/internal/feature/settings/transport/handler"
	platformhandler "leadswift_backend/internal/platform/http/handler"
	jwtmw "leadswift_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー群です。OIDC と Ready と Metrics は省略できます。
type Handlers struct {
	Auth       *authhandler.AuthHandler
	OIDC       *authhandler.OIDCHandler
	Pitch      *pitchhandler.PitchHandler
	Analytics  *analyticshandler.AnalyticsHandler
	Compliance *compliancehandler.ComplianceHandler
	Settings   *settingshandler.SettingsHandler
	Ready      *platformhandler.ReadinessHandler
	Metrics    MetricsExporter
}

// MetricsExporter はリクエスト計測ミドルウェアと公開用ハンドラーを提供します。
type MetricsExporter interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

const generatePitchPath = "/api/generate-pitch"

// Options はルーター全体の設定です。
type Options struct {
	JWTSecret   string
	CORSOrigins []string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()

	// ブラウザのダッシュボードからの呼び出しを許可
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	if h.Ready != nil {
		r.GET("/readyz", h.Ready.Ready)
	}
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)
	r.POST("/auth/refresh", h.Auth.Refresh)
	r.POST("/auth/logout", h.Auth.Logout)
	// 未ログインでも200で {authenticated:false} を返す
	r.GET("/auth/session", jwtmw.OptionalAuth(opts.JWTSecret), h.Auth.Session)

	// IdPが設定されている場合のみ
	if h.OIDC != nil {
		r.GET("/auth/login/oidc", h.OIDC.StartLogin)
		r.GET("/auth/callback", h.OIDC.Callback)
	}

	// POST以外は空の405を返すため全メソッドで受ける
	r.Any(generatePitchPath, h.Pitch.GeneratePitch)
	// Anyに含まれない拡張メソッド（PROPFIND等）はNoRouteに落ちるので同じハンドラーへ
	r.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path == generatePitchPath {
			h.Pitch.GeneratePitch(c)
		}
	})

	// 認証必須のルート
	authed := r.Group("/api")
	authed.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		authed.GET("/pitches", h.Pitch.ListPitches)
		authed.GET("/pitches/:id", h.Pitch.GetPitch)

		authed.GET("/analytics/overview", h.Analytics.Overview)

		authed.GET("/compliance/checks", h.Compliance.Checks)
		authed.POST("/compliance/scans", h.Compliance.StartScan)
		authed.GET("/compliance/scans/:id", h.Compliance.GetScan)

		authed.GET("/settings", h.Settings.All)
		authed.PUT("/settings", h.Settings.Save)
		authed.GET("/settings/:tab", h.Settings.Tab)
		authed.POST("/settings/toggles/:key", h.Settings.Toggle)
	}

	return r
}
