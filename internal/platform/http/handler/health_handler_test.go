package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(deps map[string]Pinger) *gin.Engine {
	h := Health(map[string]string{"classifier": "clip", "prophet": "openai"}, deps)
	r := gin.New()
	r.GET("/healthz", h)
	r.HEAD("/healthz", h)
	r.OPTIONS("/healthz", h)
	return r
}

func TestHealth(t *testing.T) {
	t.Parallel()

	okPing := PingFunc(func(ctx context.Context) error { return nil })
	badPing := PingFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		method     string
		deps       map[string]Pinger
		wantStatus int
		wantBody   string
	}{
		{
			name:       "GET without deps",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","backends":{"classifier":"clip","prophet":"openai"}}`,
		},
		{
			name:       "GET with healthy redis",
			method:     http.MethodGet,
			deps:       map[string]Pinger{"redis": okPing},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","backends":{"classifier":"clip","prophet":"openai"},"checks":{"redis":"ok"}}`,
		},
		{
			name:       "GET with unavailable redis",
			method:     http.MethodGet,
			deps:       map[string]Pinger{"redis": badPing},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","backends":{"classifier":"clip","prophet":"openai"},"checks":{"redis":"unavailable"}}`,
		},
		{
			name:       "HEAD has no body",
			method:     http.MethodHead,
			wantStatus: http.StatusOK,
		},
		{
			name:       "OPTIONS returns no content",
			method:     http.MethodOptions,
			deps:       map[string]Pinger{"redis": badPing},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := setupRouter(tt.deps)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Zero(t, w.Body.Len())
			}
		})
	}
}
