package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/platform/session"
)

// NewSessionRepository はSessionRepositoryの実装を生成します。
// Redisが利用可能な場合はRedis実装を、そうでない場合はプロセス内メモリの実装を返します。
func NewSessionRepository(rdb *redis.Client, cfg config.SessionConfig) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, cfg.Prefix, cfg.TTL)
	}
	slog.Warn("Redis unavailable. Sessions are kept in process memory.")
	return session.NewSessionMemory(cfg.TTL)
}
