package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextSessionID はトークンで認可されたセッションIDを格納するコンテキストキーです。
const ContextSessionID = "sessionID"

// SessionRequired returns a Gin middleware that validates the bearer token
// and checks that it grants access to the session named by the URL parameter.
func SessionRequired(gen Generator, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		// 2. Verify signature and expiry
		sid, err := gen.ParseToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Token must belong to the requested session
		if sid != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token does not grant access to this session"})
			return
		}

		c.Set(ContextSessionID, sid)
		c.Next()
	}
}
