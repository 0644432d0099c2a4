package http

import (
	"net"
	nethttp "net/http"
	"time"
)

// NewClient returns a client with pooled keep-alive connections shared by
// every vendor adapter.
func NewClient(timeout time.Duration) *nethttp.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &nethttp.Transport{
		Proxy: nethttp.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &nethttp.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
