// Package httpc provides a shared HTTP client tuned for the robot link.
// Velocity commands are latency-sensitive, so timeouts are short: a command
// that cannot be delivered within a couple of frames is already stale.
package httpc

import (
	"bytes"
	"net"
	"net/http"
	"time"
)

// Timeouts for robot HTTP operations.
const (
	DefaultTimeout        = 2 * time.Second
	DefaultConnectTimeout = 1 * time.Second
	DefaultKeepAlive      = 30 * time.Second
)

// Client is a shared HTTP client with control-loop-friendly defaults.
// Use this instead of http.DefaultClient.
var Client = &http.Client{
	Timeout: DefaultTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   DefaultConnectTimeout,
			KeepAlive: DefaultKeepAlive,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	},
}

// NewClient creates a new HTTP client with the specified timeout.
// For most cases, use the shared Client variable instead.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Client.Transport,
	}
}

// Get performs an HTTP GET with the shared client.
func Get(url string) (*http.Response, error) {
	return Client.Get(url)
}

// PostJSON performs an HTTP POST of a JSON body with the shared client.
func PostJSON(url string, body []byte) (*http.Response, error) {
	return Client.Post(url, "application/json", bytes.NewReader(body))
}
