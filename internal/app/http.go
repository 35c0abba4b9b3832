package app

import (
	"net"
	"net/http"
	"time"
)

// newHTTPClient returns the client shared by the search and LLM providers.
// A non-positive timeout falls back to httpTimeoutDefault.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeoutDefault
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
