// Package netx builds the HTTP client shared by the service gateway.
package netx

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client whose whole request, including reading the
// body, is bounded by timeout. Connection setup gets its own, shorter bound.
// A non-positive timeout disables the overall limit.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialTimeout := 10 * time.Second
	if timeout > 0 && timeout < dialTimeout {
		dialTimeout = timeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   dialTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	c := &http.Client{Transport: transport}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return c
}
