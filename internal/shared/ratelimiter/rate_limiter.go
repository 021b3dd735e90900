// Package ratelimiter は外部API（LLMプロバイダー）呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter はトークンバケットで呼び出し頻度を制限します。
type RateLimiter struct {
	limiter *rate.Limiter
	name    string
}

// NewRateLimiter は interval あたり limit 回まで許可するRateLimiterを生成します。
// limit が0以下の場合は無制限になります。
func NewRateLimiter(name string, limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0), name: name}
	}
	every := interval / time.Duration(limit)
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(every), limit), name: name}
}

// Wait は呼び出しが許可されるまで待機します。ctxがキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Allow() {
		return nil
	}
	slog.Info("[RATE LIMIT] waiting for slot", "limiter", rl.name)
	return rl.limiter.Wait(ctx)
}
