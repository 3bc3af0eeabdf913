// Package cb is the NGSI-v2 context broker client (Orion and compatible
// brokers): entity CRUD, subscription management, and broker metadata.
package cb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fiware-community/figo/core"
	"github.com/fiware-community/figo/models"
)

// Client talks to one context broker under one tenancy header.
type Client struct {
	base *core.BaseClient
}

// NewClient creates a context broker client.
func NewClient(baseURL string, header core.FiwareHeader, opts ...core.Option) (*Client, error) {
	base, err := core.NewBaseClient("cb", baseURL, header, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{base: base}, nil
}

// Version is the broker version document.
type Version struct {
	Orion struct {
		Version string `json:"version"`
		Uptime  string `json:"uptime"`
	} `json:"orion"`
}

// GetVersion fetches the broker version document.
func (c *Client) GetVersion(ctx context.Context) (*Version, error) {
	var v Version
	if _, err := c.base.Do(ctx, "get_version", http.MethodGet, "/version", nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// EntityQuery narrows ListEntities.
type EntityQuery struct {
	// Type restricts results to one entity type.
	Type string
	// IDPattern is a regular expression over entity ids.
	IDPattern string
	// Attrs limits the attributes included in each entity.
	Attrs []string
	// Q is an NGSI-v2 simple query expression, e.g. "temperature>25".
	Q string
	// KeyValues requests the condensed representation.
	KeyValues bool
	// Limit and Offset page the result set.
	Limit  int
	Offset int
}

func (q EntityQuery) values() url.Values {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.IDPattern != "" {
		v.Set("idPattern", q.IDPattern)
	}
	if len(q.Attrs) > 0 {
		v.Set("attrs", strings.Join(q.Attrs, ","))
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.KeyValues {
		v.Set("options", "keyValues")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// ListEntities queries entities matching the filter.
func (c *Client) ListEntities(ctx context.Context, query EntityQuery) ([]models.ContextEntity, error) {
	var entities []models.ContextEntity
	if _, err := c.base.Do(ctx, "list_entities", http.MethodGet, "/v2/entities", query.values(), nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// GetEntity fetches one entity by id. An empty entityType matches any type.
func (c *Client) GetEntity(ctx context.Context, id, entityType string) (*models.ContextEntity, error) {
	query := url.Values{}
	if entityType != "" {
		query.Set("type", entityType)
	}
	var entity models.ContextEntity
	if _, err := c.base.Do(ctx, "get_entity", http.MethodGet, "/v2/entities/"+url.PathEscape(id), query, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// CreateEntity registers a new entity. The broker answers 422 when the id
// already exists.
func (c *Client) CreateEntity(ctx context.Context, entity *models.ContextEntity) error {
	if err := models.ValidateFieldValue(entity.ID); err != nil {
		return fmt.Errorf("entity id: %w", err)
	}
	if err := models.ValidateFieldValue(entity.Type); err != nil {
		return fmt.Errorf("entity type: %w", err)
	}
	_, err := c.base.Do(ctx, "create_entity", http.MethodPost, "/v2/entities", nil, entity, nil)
	return err
}

// UpsertEntity creates the entity or updates its attributes when it
// already exists.
func (c *Client) UpsertEntity(ctx context.Context, entity *models.ContextEntity) error {
	query := url.Values{"options": []string{"upsert"}}
	_, err := c.base.Do(ctx, "upsert_entity", http.MethodPost, "/v2/entities", query, entity, nil)
	return err
}

// UpdateEntityAttrs appends or updates attributes on an existing entity.
func (c *Client) UpdateEntityAttrs(ctx context.Context, id string, attrs map[string]models.ContextAttribute) error {
	for name := range attrs {
		if err := models.ValidateAttributeName(name); err != nil {
			return err
		}
	}
	_, err := c.base.Do(ctx, "update_entity_attrs", http.MethodPost, "/v2/entities/"+url.PathEscape(id)+"/attrs", nil, attrs, nil)
	return err
}

// DeleteEntity removes one entity.
func (c *Client) DeleteEntity(ctx context.Context, id string) error {
	_, err := c.base.Do(ctx, "delete_entity", http.MethodDelete, "/v2/entities/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// ListSubscriptions returns all subscriptions visible under the tenancy
// header.
func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	if _, err := c.base.Do(ctx, "list_subscriptions", http.MethodGet, "/v2/subscriptions", nil, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetSubscription fetches one subscription by id.
func (c *Client) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if _, err := c.base.Do(ctx, "get_subscription", http.MethodGet, "/v2/subscriptions/"+url.PathEscape(id), nil, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription registers a subscription and returns the broker
// assigned id, taken from the Location header.
func (c *Client) CreateSubscription(ctx context.Context, sub *models.Subscription) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}
	header, err := c.base.Do(ctx, "create_subscription", http.MethodPost, "/v2/subscriptions", nil, sub, nil)
	if err != nil {
		return "", err
	}
	location := header.Get("Location")
	if !strings.HasPrefix(location, "/v2/subscriptions/") {
		return "", fmt.Errorf("create_subscription: broker answered without a usable Location header: %q", location)
	}
	return strings.TrimPrefix(location, "/v2/subscriptions/"), nil
}

// UpdateSubscription patches an existing subscription.
func (c *Client) UpdateSubscription(ctx context.Context, id string, sub *models.Subscription) error {
	_, err := c.base.Do(ctx, "update_subscription", http.MethodPatch, "/v2/subscriptions/"+url.PathEscape(id), nil, sub, nil)
	return err
}

// DeleteSubscription removes one subscription.
func (c *Client) DeleteSubscription(ctx context.Context, id string) error {
	_, err := c.base.Do(ctx, "delete_subscription", http.MethodDelete, "/v2/subscriptions/"+url.PathEscape(id), nil, nil, nil)
	return err
}
