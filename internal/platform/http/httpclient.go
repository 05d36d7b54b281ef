package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultTimeout はタイムアウト未指定時のリクエスト全体のタイムアウトです。
	DefaultTimeout = 20 * time.Second
	// UserAgent はプロバイダ呼び出しで送るUser-Agentです。
	UserAgent = "lunch-oracle/0.3"
)

// sharedTransport は全プロバイダのクライアントで共有する接続プールです。
// ProxyはHTTP_PROXYなどの環境変数に従います。
var sharedTransport = sync.OnceValue(func() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
})

// userAgentTransport はUser-Agentが未設定のリクエストにUserAgentを付与します。
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", UserAgent)
	return t.base.RoundTrip(r)
}

// NewHTTPClient は外部プロバイダ呼び出し用のHTTPクライアントを作成します。
// timeoutはプロバイダごとの1回の呼び出しの上限で、0以下の場合はDefaultTimeoutです。
// http.DefaultClientにはタイムアウトがないため、プロバイダのアダプタは常にこのクライアントを使うこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	return newClient(timeout, sharedTransport())
}

func newClient(timeout time.Duration, base http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: &userAgentTransport{base: base}}
}
