// Package resilience は外部プロバイダ呼び出しのタイムアウト・リトライ・レート制限を提供します。
package resilience

import (
	"context"
	"time"

	"github.com/eapache/go-resiliency/retrier"

	"lunch_oracle/internal/shared/ratelimiter"
)

// Policy は1回の外部呼び出しに適用する制約です。ゼロ値は制約なしの1回呼び出しです。
type Policy struct {
	Timeout time.Duration                    // 1試行あたりのタイムアウト
	Retries int                              // 失敗時の追加試行回数
	Backoff time.Duration                    // リトライ前の待機時間
	Limiter ratelimiter.RateLimiterInterface // nilの場合は制限なし
}

// Run はworkをPolicyに従って実行します。最後の試行のエラーを返します。
func (p Policy) Run(ctx context.Context, work func(ctx context.Context) error) error {
	retries := p.Retries
	if retries < 0 {
		retries = 0
	}
	r := retrier.New(retrier.ConstantBackoff(retries, p.Backoff), nil)
	return r.RunCtx(ctx, func(ctx context.Context) error {
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if p.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.Timeout)
			defer cancel()
		}
		return work(ctx)
	})
}
