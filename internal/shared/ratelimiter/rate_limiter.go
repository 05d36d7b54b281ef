package ratelimiter

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、外部プロバイダへの呼び出し頻度をトークンバケットで制限します。
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewRateLimiterは1秒あたりperSecond回、バーストburstまでを許可するRateLimiterを生成します。
// perSecondが0以下の場合は制限しません。
func NewRateLimiter(name string, perSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{name: name, limiter: rate.NewLimiter(limit, burst)}
}

// Waitはトークンが得られるまで待機します。ctxがキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if !rl.limiter.Allow() {
		slog.Debug("rate limit hit, waiting", "limiter", rl.name)
		return rl.limiter.Wait(ctx)
	}
	return nil
}
