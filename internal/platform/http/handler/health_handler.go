// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は依存先の疎通確認です。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc は関数をPingerとして扱います。
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health は /healthz エンドポイントのハンドラーを返します。
// backendsは選択中のプロバイダ名としてそのまま返し、depsのいずれかが応答しない場合は503を返します。
func Health(backends map[string]string, deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		checks := make(map[string]string, len(deps))
		for name, p := range deps {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := p.Ping(ctx)
			cancel()
			if err != nil {
				checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		body := gin.H{"status": "ok", "backends": backends}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		c.JSON(status, body)
	}
}
