// Package remote implements the persistence collaborator boundary: an
// HTTP client for the 11JOB REST backend. Every call is one request and
// one response with a flat timeout; there is no retry, no backoff and no
// request deduplication, so callers own those concerns.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/11JOB/11JOB-frontend/internal/infrastructure/config"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
)

// TokenSource supplies the bearer token for outgoing requests. The session
// store implements it; call sites never read token state themselves.
type TokenSource interface {
	Token() (string, bool)
}

// Error is a collaborator failure mapped into the local error taxonomy.
// StatusCode 0 means the request never produced a response (connectivity
// loss, timeout).
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether retrying the same call can reasonably
// succeed: transport failures and server-side errors are retryable,
// rejections of the request itself are not.
func (e *Error) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// IsRetryable reports whether err is a retryable collaborator failure.
func IsRetryable(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Retryable()
}

// envelope is the backend's common response wrapper.
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is the shared transport under the per-resource adapters.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	logger *logger.Logger
}

// New creates the backend client. reg may be nil to skip metrics
// registration (tests do this).
func New(cfg config.RemoteConfig, tokens TokenSource, reg prometheus.Registerer, appLogger *logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newMetricsTransport(http.DefaultTransport, reg),
		},
		tokens: tokens,
		logger: appLogger.WithComponent("remote"),
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// roundTrip executes the request and returns the raw response on 2xx.
// Non-2xx responses and transport failures are mapped to *Error.
func (c *Client) roundTrip(req *http.Request) (*http.Response, []byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

	if err != nil {
		c.logger.LogRemoteCall(req.Method, req.URL.Path, 0, elapsed, err)
		return nil, nil, &Error{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.LogRemoteCall(req.Method, req.URL.Path, resp.StatusCode, elapsed, err)
		return nil, nil, &Error{StatusCode: 0, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			remoteErr.Code = env.Code
			remoteErr.Message = env.Message
		}
		c.logger.LogRemoteCall(req.Method, req.URL.Path, resp.StatusCode, elapsed, remoteErr)
		return resp, raw, remoteErr
	}

	c.logger.LogRemoteCall(req.Method, req.URL.Path, resp.StatusCode, elapsed, nil)
	return resp, raw, nil
}

// unwrap decodes a 2xx body into out. Most endpoints wrap their payload
// in {code, message, data}; a few return the payload bare, so a body
// without a data field decodes as-is.
func unwrap(raw []byte, out interface{}) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	_, raw, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	return unwrap(raw, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, nil, reader, "application/json")
	if err != nil {
		return err
	}
	_, raw, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	return unwrap(raw, out)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, dto interface{}, parts []filePart, out interface{}) error {
	body, contentType, err := multipartBody(dto, parts)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, nil, body, contentType)
	if err != nil {
		return err
	}
	_, raw, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	return unwrap(raw, out)
}
