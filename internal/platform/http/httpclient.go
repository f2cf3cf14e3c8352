// Package http はアウトバウンドHTTP呼び出し用の共通設定を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は認識サーバーなど外部API呼び出し用のHTTPクライアントを作成します。
//
// http.DefaultClientはタイムアウトを持たないため使用しません。
// timeoutはリクエスト全体（推論待ちを含む）の上限です。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
