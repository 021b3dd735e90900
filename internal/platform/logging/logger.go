// Package logging はslogのグローバルロガーを環境変数から構成します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config はロガー設定です。
type Config struct {
	Level  string // debug | info | warn | error
	Format string // json | text
}

// LoadConfig は LOG_LEVEL と LOG_FORMAT を読み込みます。
func LoadConfig() Config {
	return Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}
}

// New は設定に従ったロガーを返します。
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup はロガーを生成し、slogのデフォルトに設定します。
func Setup(cfg Config) *slog.Logger {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
