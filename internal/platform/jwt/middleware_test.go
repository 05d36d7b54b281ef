package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(gen Generator) *gin.Engine {
	r := gin.New()
	r.GET("/sessions/:id", SessionRequired(gen, "id"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSessionID))
	})
	return r
}

// TestSessionRequired はトークンの有無・正当性・対象セッションの一致による認可を検証します。
func TestSessionRequired(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	tokenS1, err := gen.GenerateToken("s1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"no header", "/sessions/s1", "", http.StatusUnauthorized},
		{"basic auth", "/sessions/s1", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"bearer lowercase", "/sessions/s1", "bearer " + tokenS1, http.StatusUnauthorized},
		{"invalid token", "/sessions/s1", "Bearer garbage", http.StatusUnauthorized},
		{"token for another session", "/sessions/s2", "Bearer " + tokenS1, http.StatusUnauthorized},
		{"valid token", "/sessions/s1", "Bearer " + tokenS1, http.StatusOK},
	}

	router := setupRouter(gen)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "s1", w.Body.String())
			}
		})
	}
}
