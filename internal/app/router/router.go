// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lunch_oracle/internal/feature/oracle/transport/handler"
	jwtmw "lunch_oracle/internal/platform/jwt"
)

// NewRouter はoracleのAPIルートを登録したginエンジンを生成します。
// allowOriginsが空の場合はCORSミドルウェアを使いません。
func NewRouter(oracle *handler.OracleHandler, tokens jwtmw.Generator, health gin.HandlerFunc, allowOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(allowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		r.Use(cors.New(corsConfig))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	// セッション開始（トークン発行）
	r.POST("/v1/oracle/sessions", oracle.StartSession)

	// トークン必須のルート
	// → Authorizationヘッダーのトークンが:idのセッションを指している必要がある
	sessions := r.Group("/v1/oracle/sessions/:id")
	sessions.Use(jwtmw.SessionRequired(tokens, "id"))
	{
		sessions.GET("", oracle.GetSession)
		sessions.POST("/image", oracle.ResubmitImage)
		sessions.POST("/label", oracle.OverrideLabel)
		sessions.POST("/confirm", oracle.ConfirmLabel)
		sessions.POST("/reflections", oracle.Reflect)
	}

	return r
}
