// Package iota is the IoT agent north port client: device and service
// group provisioning.
package iota

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fiware-community/figo/core"
	"github.com/fiware-community/figo/models"
)

// Client talks to one IoT agent under one tenancy header.
type Client struct {
	base *core.BaseClient
}

// NewClient creates an IoT agent client.
func NewClient(baseURL string, header core.FiwareHeader, opts ...core.Option) (*Client, error) {
	base, err := core.NewBaseClient("iota", baseURL, header, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{base: base}, nil
}

// About is the agent identification document.
type About struct {
	LibVersion string `json:"libVersion"`
	Port       string `json:"port"`
	BaseRoot   string `json:"baseRoot"`
	Version    string `json:"version"`
}

// GetAbout fetches the agent identification document.
func (c *Client) GetAbout(ctx context.Context) (*About, error) {
	var about About
	if _, err := c.base.Do(ctx, "get_about", http.MethodGet, "/iot/about", nil, nil, &about); err != nil {
		return nil, err
	}
	return &about, nil
}

type deviceList struct {
	Count   int             `json:"count"`
	Devices []models.Device `json:"devices"`
}

// ListDevices returns all provisioned devices.
func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	var list deviceList
	if _, err := c.base.Do(ctx, "list_devices", http.MethodGet, "/iot/devices", nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Devices, nil
}

// GetDevice fetches one device by id.
func (c *Client) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	var device models.Device
	if _, err := c.base.Do(ctx, "get_device", http.MethodGet, "/iot/devices/"+url.PathEscape(deviceID), nil, nil, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevices provisions one or more devices in a single call.
func (c *Client) CreateDevices(ctx context.Context, devices []models.Device) error {
	for i := range devices {
		if err := devices[i].Validate(); err != nil {
			return fmt.Errorf("device %d: %w", i, err)
		}
	}
	body := map[string][]models.Device{"devices": devices}
	_, err := c.base.Do(ctx, "create_devices", http.MethodPost, "/iot/devices", nil, body, nil)
	return err
}

// DeleteDevice removes one device registration.
func (c *Client) DeleteDevice(ctx context.Context, deviceID string) error {
	_, err := c.base.Do(ctx, "delete_device", http.MethodDelete, "/iot/devices/"+url.PathEscape(deviceID), nil, nil, nil)
	return err
}

type groupList struct {
	Count    int                   `json:"count"`
	Services []models.ServiceGroup `json:"services"`
}

// ListGroups returns all service groups.
func (c *Client) ListGroups(ctx context.Context) ([]models.ServiceGroup, error) {
	var list groupList
	if _, err := c.base.Do(ctx, "list_groups", http.MethodGet, "/iot/services", nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Services, nil
}

// CreateGroups provisions one or more service groups in a single call.
func (c *Client) CreateGroups(ctx context.Context, groups []models.ServiceGroup) error {
	for i := range groups {
		if err := groups[i].Validate(); err != nil {
			return fmt.Errorf("service group %d: %w", i, err)
		}
	}
	body := map[string][]models.ServiceGroup{"services": groups}
	_, err := c.base.Do(ctx, "create_groups", http.MethodPost, "/iot/services", nil, body, nil)
	return err
}

// DeleteGroup removes the service group identified by its resource path and
// API key.
func (c *Client) DeleteGroup(ctx context.Context, resource, apiKey string) error {
	query := url.Values{
		"resource": []string{resource},
		"apikey":   []string{apiKey},
	}
	_, err := c.base.Do(ctx, "delete_group", http.MethodDelete, "/iot/services", query, nil, nil)
	return err
}
