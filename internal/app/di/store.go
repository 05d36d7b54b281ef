// Package di はアプリケーションの部品を組み立てるファクトリを提供します。
package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/platform/cache"
	infraredis "lunch_oracle/internal/platform/redis"
)

// NewRedisClient はRedisクライアントを生成します。
// 未設定または接続できない場合はnilを返し、呼び出し側はメモリ実装にフォールバックします。
func NewRedisClient(ctx context.Context, cfg infraredis.Config) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Warn("Redis unavailable. Running without Redis.", "error", err)
		return nil
	}
	return rdb
}

// NewMemoStore はプロバイダ呼び出しのメモ化に使うStoreを生成します。
// 無効化されている場合はnilを返します。
func NewMemoStore(rdb *redis.Client, cfg config.CacheConfig) cache.Store {
	if !cfg.Enabled {
		return nil
	}
	if rdb != nil {
		return cache.NewRedisStore(rdb, cfg.RedisTTL)
	}
	return cache.NewMemoryStore(0)
}
