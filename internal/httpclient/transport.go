package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewTransport creates the shared HTTP transport.
// The transport is reused across requests for connection pooling.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		// Maximum number of idle connections across all hosts
		MaxIdleConns: 100,

		// Probes hit the same host in bursts
		MaxIdleConnsPerHost: 16,

		IdleConnTimeout: 90 * time.Second,

		TLSHandshakeTimeout: 10 * time.Second,

		// Timeout for expecting response headers after request is sent
		ResponseHeaderTimeout: 10 * time.Second,

		ExpectContinueTimeout: 1 * time.Second,

		// Content-Encoding is negotiated and decoded by the client itself
		DisableCompression: true,

		ForceAttemptHTTP2: true,
	}
}
