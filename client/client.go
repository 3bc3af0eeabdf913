// Package client composes the per-component FIWARE clients into one
// platform handle built from a single configuration.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fiware-community/figo/client/cb"
	"github.com/fiware-community/figo/client/iota"
	"github.com/fiware-community/figo/client/ql"
	"github.com/fiware-community/figo/config"
	"github.com/fiware-community/figo/core"
	"github.com/fiware-community/figo/metric"
)

// Client bundles the component clients for one FIWARE deployment. All
// components share the tenancy header and HTTP transport settings.
type Client struct {
	CB   *cb.Client
	IoTA *iota.Client
	QL   *ql.Client

	header core.FiwareHeader
}

// Option configures the composed client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metric.Metrics
}

// WithHTTPClient sets a shared custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger passed to every component client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables request metrics on every component client.
func WithMetrics(m *metric.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New builds the composed client from configuration. Components whose URL
// is left empty are omitted; using them panics, so callers should check
// the fields they need.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	o := &options{
		httpClient: &http.Client{Timeout: cfg.HTTP.Timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	header := core.FiwareHeader{
		Service:     cfg.Fiware.Service,
		ServicePath: cfg.Fiware.ServicePath,
	}
	coreOpts := []core.Option{
		core.WithHTTPClient(o.httpClient),
		core.WithLogger(o.logger),
		core.WithMetrics(o.metrics),
	}

	c := &Client{header: header}

	var err error
	if c.CB, err = cb.NewClient(cfg.Fiware.ContextBrokerURL, header, coreOpts...); err != nil {
		return nil, fmt.Errorf("context broker client: %w", err)
	}
	if cfg.Fiware.IoTAgentURL != "" {
		if c.IoTA, err = iota.NewClient(cfg.Fiware.IoTAgentURL, header, coreOpts...); err != nil {
			return nil, fmt.Errorf("iot agent client: %w", err)
		}
	}
	if cfg.Fiware.QuantumLeapURL != "" {
		if c.QL, err = ql.NewClient(cfg.Fiware.QuantumLeapURL, header, coreOpts...); err != nil {
			return nil, fmt.Errorf("quantum leap client: %w", err)
		}
	}

	return c, nil
}

// Header returns the tenancy header shared by all components.
func (c *Client) Header() core.FiwareHeader {
	return c.header
}

// CheckConnections probes every configured component and returns the first
// failure. Useful at startup to fail fast on wrong URLs.
func (c *Client) CheckConnections(ctx context.Context) error {
	if _, err := c.CB.GetVersion(ctx); err != nil {
		return fmt.Errorf("context broker: %w", err)
	}
	if c.IoTA != nil {
		if _, err := c.IoTA.GetAbout(ctx); err != nil {
			return fmt.Errorf("iot agent: %w", err)
		}
	}
	if c.QL != nil {
		if _, err := c.QL.GetVersion(ctx); err != nil {
			return fmt.Errorf("quantum leap: %w", err)
		}
	}
	return nil
}
