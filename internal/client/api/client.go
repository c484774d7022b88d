// Package api implements the single HTTP gateway to the BookGenie backend.
// It translates a (path, method, body, token) tuple into a parsed payload or
// a typed failure and nothing else: no retries, no caching, no session state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookgenie/bookgenie-cli/internal/logging"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	// newRequestID is a test seam for correlation IDs.
	newRequestID func() string
}

// New builds a Client for the given base URL (e.g. "http://localhost:5000/api").
func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		log:          log.With("component", "api"),
		newRequestID: uuid.NewString,
	}
}

// Options describes one request. Body, when non-nil, is JSON-serialized.
// Token, when non-empty, is sent as a bearer Authorization header.
type Options struct {
	Method string
	Token  string
	Body   any
	Header http.Header
}

// Request performs one HTTP round trip against endpoint (a path relative to
// the base URL, query string included) and returns the raw response payload.
//
// The body is decoded regardless of HTTP status since the server reports
// error details in it. Non-2xx responses produce a *StatusError; transport
// failures produce an error wrapping ErrUnreachable. A 401 is not treated
// specially here: callers decide what it means.
func (c *Client) Request(ctx context.Context, endpoint string, opts Options) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	requestID := c.newRequestID()
	req.Header.Set("X-Request-Id", requestID)

	return c.do(req, requestID)
}

func (c *Client) do(req *http.Request, requestID string) (json.RawMessage, error) {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed",
			"method", req.Method, "endpoint", req.URL.Path, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}

	c.log.Debug(req.Context(), "request finished",
		"method", req.Method, "endpoint", req.URL.Path,
		"status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	// Decode the error body; if the server sent something unparseable,
	// synthesize the same shape it would have used.
	body := map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		body = map[string]any{"error": fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}
	return nil, &StatusError{Status: resp.StatusCode, Body: body}
}
