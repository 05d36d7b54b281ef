// Package server はHTTPサーバーの組み立てと起動を提供します。
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/app/di"
	"lunch_oracle/internal/app/router"
	"lunch_oracle/internal/feature/oracle/transport/handler"
	healthhandler "lunch_oracle/internal/platform/http/handler"
)

const shutdownTimeout = 10 * time.Second

// NewEngine は設定からginエンジンを組み立てます。
// 戻り値のcleanupは呼び出し元がdeferすること。
func NewEngine(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	rdb := di.NewRedisClient(ctx, cfg.Redis)
	cleanup := func() {
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}
	}

	store := di.NewMemoStore(rdb, cfg.Cache)
	sessions := di.NewSessionRepository(rdb, cfg.Session)

	uc, closeProviders, err := di.NewOracleUsecase(ctx, cfg, store, sessions)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	tokens, err := di.NewTokenGenerator(cfg.Session)
	if err != nil {
		closeProviders()
		cleanup()
		return nil, nil, err
	}

	health := healthhandler.Health(map[string]string{
		"classifier": cfg.Classifier.Backend,
		"prophet":    cfg.Prophet.Backend,
		"venues":     cfg.Venues.Backend,
	}, healthDeps(rdb))

	engine := router.NewRouter(handler.NewOracleHandler(uc, tokens), tokens, health, cfg.Server.AllowOrigins)
	return engine, func() {
		closeProviders()
		cleanup()
	}, nil
}

func healthDeps(rdb *redis.Client) map[string]healthhandler.Pinger {
	if rdb == nil {
		return nil
	}
	return map[string]healthhandler.Pinger{
		"redis": healthhandler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	}
}

// Run はctxがキャンセルされるまでHTTPサーバーを起動します。キャンセル後はグレースフルに停止します。
func Run(ctx context.Context, cfg *config.Config) error {
	engine, cleanup, err := NewEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
