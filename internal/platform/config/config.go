// Package config はアプリケーション全体の設定を環境変数から読み込みます。
// DB・Redis・OIDC・ロガーの設定は各パッケージの LoadConfig が担当します。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// デフォルト値
const (
	DefaultPort               = "8080"
	DefaultPitchProvider      = "placeholder"
	DefaultPitchRatePerMinute = 30
	DefaultFrontendURL        = "http://localhost:3000"
	DefaultShutdownTimeout    = 10 * time.Second
)

// Config はHTTPサーバーと機能の設定です。
type Config struct {
	Port               string
	JWTSecret          string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	PitchProvider      string // placeholder | gemini | openai
	PitchRatePerMinute int
	FrontendURL        string
	CORSOrigins        []string
	ShutdownTimeout    time.Duration
}

// LoadConfig は環境変数から設定を読み込みます。不正な値は警告を出してデフォルトを使います。
func LoadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("PITCH_PROVIDER")))
	if provider == "" {
		provider = DefaultPitchProvider
	}
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = DefaultFrontendURL
	}

	return Config{
		Port:               port,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTTL:          durationEnv("JWT_TTL", 0),
		RefreshTTL:         durationEnv("REFRESH_TTL", 0),
		PitchProvider:      provider,
		PitchRatePerMinute: intEnv("PITCH_RATE_PER_MINUTE", DefaultPitchRatePerMinute),
		FrontendURL:        frontend,
		CORSOrigins:        splitList(os.Getenv("CORS_ORIGINS")),
		ShutdownTimeout:    durationEnv("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

// Addr はHTTPサーバーのリッスンアドレスを返します。
func (c Config) Addr() string {
	return ":" + c.Port
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
