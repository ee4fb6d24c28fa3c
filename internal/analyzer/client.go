// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package analyzer is the HTTP boundary to the danmaku analyzer backend.
//
// Client dispatches GET requests against a fixed base URL with a fixed
// timeout. Whether a response resolves or rejects is decided by a
// StatusPolicy on the transport; the default AcceptBelow500 hands every
// status under 500 back to the caller, 4xx included, and rejects the rest.
// Each call is a single attempt.
//
// API is the thin façade views and the CLI use:
//
//	client, err := analyzer.NewClient(&cfg.Analyzer)
//	api := analyzer.NewAPI(client)
//	top, err := api.TopDanmakus(ctx, 10)
package analyzer

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/danmakuview/internal/config"
	"github.com/tomtom215/danmakuview/internal/logging"
	"github.com/tomtom215/danmakuview/internal/metrics"
	"github.com/tomtom215/danmakuview/internal/models"
)

const (
	// DefaultBaseURL is the analyzer API root.
	DefaultBaseURL = "http://localhost:8080/api/"

	// DefaultTimeout is 3,000,000 ms.
	DefaultTimeout = 3_000_000 * time.Millisecond

	// maxErrorBodySize bounds the body excerpt kept on a StatusError.
	maxErrorBodySize = 64 * 1024

	// maxResponseSize bounds accepted bodies; word-cloud PNGs are the largest.
	maxResponseSize = 64 << 20
)

// StatusPolicy decides whether a response status resolves (true) or
// rejects (false).
type StatusPolicy func(status int) bool

// AcceptBelow500 resolves every status below 500.
func AcceptBelow500(status int) bool {
	return status < 500
}

// Requester is the transport the API façade needs. Client and
// CircuitBreakerClient implement it.
type Requester interface {
	Get(ctx context.Context, path string, params url.Values) (*Response, error)
}

// Response is an accepted analyzer response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope decodes the analyzer's {code, message} block. ok is false when
// the body is not a JSON object carrying a code.
func (r *Response) Envelope() (env models.Envelope, ok bool) {
	var head struct {
		Code    *int   `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Body, &head); err != nil || head.Code == nil {
		return models.Envelope{}, false
	}
	return models.Envelope{Code: *head.Code, Message: head.Message}, true
}

// MediaType returns the response media type without parameters.
func (r *Response) MediaType() string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// Client is the shared analyzer HTTP client. Its configuration is fixed at
// construction; it is safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	accept  StatusPolicy
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithStatusPolicy replaces AcceptBelow500.
func WithStatusPolicy(p StatusPolicy) ClientOption {
	return func(c *Client) {
		if p != nil {
			c.accept = p
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. Its Timeout is
// overwritten with the configured analyzer timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a Client from analyzer configuration. Empty fields
// fall back to DefaultBaseURL and DefaultTimeout.
func NewClient(cfg *config.AnalyzerConfig, opts ...ClientOption) (*Client, error) {
	baseURL := DefaultBaseURL
	timeout := DefaultTimeout
	if cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid analyzer base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		accept:  AcceptBelow500,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client.Timeout = timeout
	return c, nil
}

// BaseURL returns the API root without its trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

// resolve joins path under the base URL the way the browser client did:
// "/fetch" and "fetch" both land on <base>/fetch.
func (c *Client) resolve(path string, params url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// Get issues one GET request. A status the policy accepts is returned as a
// Response, whatever its class; everything else is a *TransportError or
// *StatusError.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	endpoint := strings.Trim(path, "/")
	reqURL := c.resolve(path, params)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json, image/*;q=0.9, */*;q=0.8")
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		terr := &TransportError{Endpoint: endpoint, URL: reqURL, Err: err}
		outcome := metrics.OutcomeTransport
		if terr.Timeout() {
			outcome = metrics.OutcomeTimeout
		}
		metrics.RecordAnalyzerCall(endpoint, outcome, time.Since(start))
		logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Str("outcome", outcome).Msg("analyzer request failed")
		return nil, terr
	}
	defer func() { _ = resp.Body.Close() }()

	if !c.accept(resp.StatusCode) {
		metrics.RecordAnalyzerCall(endpoint, metrics.OutcomeRejected, time.Since(start))
		logging.Ctx(ctx).Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("analyzer rejected request")
		return nil, &StatusError{
			Endpoint:   endpoint,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.RecordAnalyzerCall(endpoint, metrics.OutcomeTransport, time.Since(start))
		return nil, &TransportError{Endpoint: endpoint, URL: reqURL, Err: fmt.Errorf("read body: %w", err)}
	}

	metrics.RecordAnalyzerCall(endpoint, metrics.OutcomeAccepted, time.Since(start))
	logging.Ctx(ctx).Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("analyzer request completed")

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
