// Package api is the single choke point for every call the admin client
// makes. It attaches the bearer credential, correlates requests, converts
// error responses into a typed taxonomy, and reports a rejected credential
// to whoever owns the session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the marketplace admin API. All resource services are
// methods on it; none of them add business logic, retries, or caching on
// top of the single request pipeline.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client

	// tokenFunc returns the current bearer token, or "" when logged out.
	// It is read per request so the client always sees the live session.
	tokenFunc func() string

	// onSessionInvalid is invoked once per 403 response that was sent with
	// a token. Supplied by the session owner; may be nil.
	onSessionInvalid func(reason string)

	logger  *slog.Logger
	metrics *Metrics
}

// NewClient creates a new admin API client.
// It reads configuration from SHOPCTL_* environment variables by default.
// Options can be used to override the defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   os.Getenv("SHOPCTL_API_BASE_URL"),
		timeout:   parseDurationEnv("SHOPCTL_API_TIMEOUT", 15*time.Second),
		tokenFunc: func() string { return "" },
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// do performs one HTTP round-trip against the admin API.
//
// Request phase: when the token provider yields a non-empty token it is
// attached as a bearer credential; otherwise the request goes out
// unauthenticated. Every request carries a fresh X-Request-ID.
//
// Response phase: 2xx bodies are decoded into result (when non-nil).
// Anything else becomes an *APIError carrying the server's message. A 403
// that was sent WITH a token additionally notifies the session-invalid
// observer — exactly once for that response — and the error is still
// returned unchanged so the caller can display it. A 403 without a token is
// a plain permission error and fires nothing: never having logged in is not
// the same as being logged out by the server.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}
	return c.roundTrip(ctx, method, path, query, contentType, bodyReader, result)
}

// roundTrip is the one place a request is actually built and sent. Both the
// JSON path and the multipart upload path go through it, so the bearer
// header, request correlation, metrics, and the 403 session-invalid rule
// apply uniformly.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, contentType string, bodyReader io.Reader, result any) error {
	reqURL := strings.TrimRight(c.baseURL, "/") + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	token := c.tokenFunc()
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(method, path, "transport_error", time.Since(start))
		c.logger.Debug("request failed before a response",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return &TransportError{Cause: err}
	}
	defer httpResp.Body.Close()

	c.observe(method, path, strconv.Itoa(httpResp.StatusCode), time.Since(start))

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &TransportError{Cause: fmt.Errorf("read response body: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := &APIError{
			Status:    httpResp.StatusCode,
			RequestID: requestID,
		}
		var payload errorBody
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
			if apiErr.Message == "" {
				apiErr.Message = payload.Error
			}
		}

		if httpResp.StatusCode == http.StatusForbidden && token != "" {
			// Credential was presented and rejected: the session is dead.
			// Note the server signals this with 403 rather than the
			// conventional 401; see DESIGN.md before "fixing" this.
			c.logger.Info("credential rejected, reporting session invalid",
				"path", path, "request_id", requestID)
			if c.metrics != nil {
				c.metrics.SessionInvalidations.Inc()
			}
			if c.onSessionInvalid != nil {
				c.onSessionInvalid(fmt.Sprintf("server rejected credential on %s %s", method, path))
			}
		}

		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}

	return nil
}

// get issues a GET with optional query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// post issues a POST with an optional JSON body.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// put issues a PUT with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// observe records one request in the metrics, when metrics are configured.
func (c *Client) observe(method, path, status string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.RequestsTotal.WithLabelValues(method, path, status).Inc()
	c.metrics.RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// listQuery builds the shared pagination query parameters.
func listQuery(p ListParams) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func parseDurationEnv(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return defaultVal
}
