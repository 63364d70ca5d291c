package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL sets the admin API base URL.
// If not set, defaults to the SHOPCTL_API_BASE_URL environment variable.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP request timeout.
// If not set, defaults to 15 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTokenFunc sets the bearer token provider, read once per request.
// The provider returns "" when no session exists, in which case the
// request is sent unauthenticated.
func WithTokenFunc(f func() string) Option {
	return func(c *Client) {
		if f != nil {
			c.tokenFunc = f
		}
	}
}

// WithSessionInvalidHandler sets the observer invoked when a request that
// carried a token is answered with 403. The session owner supplies this at
// construction; the client never clears the session itself.
func WithSessionInvalidHandler(f func(reason string)) Option {
	return func(c *Client) {
		c.onSessionInvalid = f
	}
}

// WithHTTPClient sets a custom http.Client for making requests.
// This is useful for testing, proxying, or custom transport configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink for request accounting.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
