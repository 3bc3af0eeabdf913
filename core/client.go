package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fiware-community/figo/metric"
)

// maxResponseSize limits response bodies to prevent memory exhaustion when
// a broker answers with an unexpectedly large payload.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// maxErrorBodySize limits how much of an error body is kept in APIError.
const maxErrorBodySize = 2048

// BaseClient is the HTTP client shared by all component clients. It handles
// URL construction, tenancy headers, request correlation, JSON codec work,
// and the error surface, so the component clients only describe endpoints.
type BaseClient struct {
	name       string
	baseURL    string
	header     FiwareHeader
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metric.Metrics
}

// Option configures a BaseClient.
type Option func(*BaseClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *BaseClient) {
		b.httpClient = c
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(b *BaseClient) {
		b.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *BaseClient) {
		b.logger = logger
	}
}

// WithMetrics enables request metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(b *BaseClient) {
		b.metrics = m
	}
}

// NewBaseClient creates a base client for one FIWARE component. The name
// labels log records and metrics ("cb", "iota", "ql").
func NewBaseClient(name, baseURL string, header FiwareHeader, opts ...Option) (*BaseClient, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}
	b := &BaseClient{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		header:     header,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Header returns the tenancy header the client was built with.
func (b *BaseClient) Header() FiwareHeader {
	return b.header
}

// BaseURL returns the component base URL.
func (b *BaseClient) BaseURL() string {
	return b.baseURL
}

// Do issues one request against the component. A non-nil body is sent as
// JSON; a non-nil out receives the decoded JSON answer. The response
// headers are returned so callers can read Location and friends. Non-2xx
// answers become *APIError, with 404 matching ErrNotFound.
func (b *BaseClient) Do(ctx context.Context, operation, method, path string, query url.Values, body, out any) (http.Header, error) {
	start := time.Now()
	header, status, err := b.do(ctx, operation, method, path, query, body, out)
	b.metrics.RecordRequest(b.name, operation, status, time.Since(start))
	return header, err
}

func (b *BaseClient) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) (http.Header, string, error) {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "encode_error", fmt.Errorf("%s: encode request: %w", operation, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, "request_error", fmt.Errorf("%s: build request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderCorrelator, uuid.NewString())
	b.header.Apply(req)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Debug("request failed",
			slog.String("client", b.name),
			slog.String("operation", operation),
			slog.String("url", u),
			slog.String("error", err.Error()))
		return nil, "transport_error", fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "read_error", fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody := strings.TrimSpace(string(data))
		if len(errBody) > maxErrorBodySize {
			errBody = errBody[:maxErrorBodySize]
		}
		b.logger.Debug("request rejected",
			slog.String("client", b.name),
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode))
		return resp.Header, fmt.Sprint(resp.StatusCode), &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       errBody,
			Operation:  operation,
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.Header, "decode_error", fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}

	return resp.Header, fmt.Sprint(resp.StatusCode), nil
}
