// Package ql is the QuantumLeap time series client: attribute history
// queries and history deletion.
package ql

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fiware-community/figo/core"
	"github.com/fiware-community/figo/models"
)

// Client talks to one QuantumLeap instance under one tenancy header.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a QuantumLeap client.
func NewClient(baseURL string, header core.FiwareHeader, opts ...core.Option) (*Client, error) {
	base, err := core.NewBaseClient("ql", baseURL, header, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{base: base}, nil
}

// Version is the QuantumLeap version document.
type Version struct {
	Version string `json:"version"`
}

// GetVersion fetches the QuantumLeap version document.
func (c *Client) GetVersion(ctx context.Context) (*Version, error) {
	var v Version
	if _, err := c.base.Do(ctx, "get_version", http.MethodGet, "/version", nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func seriesValues(query models.SeriesQuery) url.Values {
	v := url.Values{}
	if len(query.Attrs) > 0 {
		v.Set("attrs", strings.Join(query.Attrs, ","))
	}
	if !query.FromDate.IsZero() {
		v.Set("fromDate", query.FromDate.UTC().Format(time.RFC3339))
	}
	if !query.ToDate.IsZero() {
		v.Set("toDate", query.ToDate.UTC().Format(time.RFC3339))
	}
	if query.Limit > 0 {
		v.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.LastN > 0 {
		v.Set("lastN", strconv.Itoa(query.LastN))
	}
	return v
}

// GetEntitySeries fetches the attribute history of one entity.
func (c *Client) GetEntitySeries(ctx context.Context, entityID string, query models.SeriesQuery) (*models.EntitySeries, error) {
	var series models.EntitySeries
	path := "/v2/entities/" + url.PathEscape(entityID)
	if _, err := c.base.Do(ctx, "get_entity_series", http.MethodGet, path, seriesValues(query), nil, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// DeleteEntityHistory removes the stored history of one entity.
func (c *Client) DeleteEntityHistory(ctx context.Context, entityID string) error {
	path := "/v2/entities/" + url.PathEscape(entityID)
	_, err := c.base.Do(ctx, "delete_entity_history", http.MethodDelete, path, nil, nil, nil)
	return err
}

// DeleteEntityTypeHistory removes the stored history of every entity of
// one type.
func (c *Client) DeleteEntityTypeHistory(ctx context.Context, entityType string) error {
	path := "/v2/types/" + url.PathEscape(entityType)
	_, err := c.base.Do(ctx, "delete_entity_type_history", http.MethodDelete, path, nil, nil, nil)
	return err
}
