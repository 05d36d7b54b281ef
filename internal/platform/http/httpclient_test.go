package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTimeout, NewHTTPClient(0).Timeout)
	assert.Equal(t, 3*time.Second, NewHTTPClient(3*time.Second).Timeout)

	// 接続プールはクライアント間で共有する
	a := NewHTTPClient(time.Second).Transport.(*userAgentTransport)
	b := NewHTTPClient(time.Minute).Transport.(*userAgentTransport)
	assert.Same(t, a.base, b.base)
}

func TestNewHTTPClient_UserAgent(t *testing.T) {
	t.Parallel()

	got := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := newClient(time.Second, server.Client().Transport)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	res, err := client.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	req, err = http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom/1.0")
	res, err = client.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	assert.Equal(t, UserAgent, <-got)
	assert.Equal(t, "custom/1.0", <-got)
}
