package models

import "fmt"

// Transport protocols supported by the IoT agents.
const (
	TransportMQTT = "MQTT"
	TransportAMQP = "AMQP"
	TransportHTTP = "HTTP"
)

// DeviceAttribute maps a device reading onto an entity attribute.
type DeviceAttribute struct {
	// ObjectID is the attribute identifier used in the device payload.
	ObjectID string `json:"object_id,omitempty"`
	// Name is the attribute name in the context entity.
	Name string `json:"name"`
	// Type is the NGSI attribute type.
	Type string `json:"type"`
	// Expression optionally derives the value with the agent's expression
	// language.
	Expression string `json:"expression,omitempty"`
	// Metadata is attached to the mapped attribute.
	Metadata map[string]Metadata `json:"metadata,omitempty"`
}

// StaticDeviceAttribute is an attribute with a fixed value, reported on
// every entity the device provisions.
type StaticDeviceAttribute struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// DeviceCommand is an actuation endpoint exposed on the entity.
type DeviceCommand struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Device is an IoT agent device registration.
type Device struct {
	DeviceID    string `json:"device_id"`
	Service     string `json:"service,omitempty"`
	ServicePath string `json:"service_path,omitempty"`
	EntityName  string `json:"entity_name"`
	EntityType  string `json:"entity_type"`
	Timezone    string `json:"timezone,omitempty"`
	APIKey      string `json:"apikey,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`
	Protocol    string `json:"protocol,omitempty"`
	Transport   string `json:"transport,omitempty"`

	Attributes       []DeviceAttribute       `json:"attributes,omitempty"`
	Commands         []DeviceCommand         `json:"commands,omitempty"`
	Lazy             []DeviceAttribute       `json:"lazy,omitempty"`
	StaticAttributes []StaticDeviceAttribute `json:"static_attributes,omitempty"`

	ExplicitAttrs bool `json:"explicitAttrs,omitempty"`
}

// Validate checks the fields the agent requires at provisioning time.
func (d *Device) Validate() error {
	if d.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}
	if d.EntityName == "" || d.EntityType == "" {
		return fmt.Errorf("device %s needs entity_name and entity_type", d.DeviceID)
	}
	if err := ValidateFieldValue(d.EntityName); err != nil {
		return fmt.Errorf("device %s entity_name: %w", d.DeviceID, err)
	}
	if err := ValidateFieldValue(d.EntityType); err != nil {
		return fmt.Errorf("device %s entity_type: %w", d.DeviceID, err)
	}
	switch d.Transport {
	case "", TransportMQTT, TransportAMQP, TransportHTTP:
	default:
		return fmt.Errorf("device %s has unknown transport %q", d.DeviceID, d.Transport)
	}
	return nil
}

// ServiceGroup is a shared provisioning profile for devices using one API
// key.
type ServiceGroup struct {
	Service     string `json:"service,omitempty"`
	ServicePath string `json:"subservice,omitempty"`
	Resource    string `json:"resource"`
	APIKey      string `json:"apikey"`
	EntityType  string `json:"entity_type,omitempty"`
	Trust       string `json:"trust,omitempty"`
	CBHost      string `json:"cbroker,omitempty"`

	Attributes       []DeviceAttribute       `json:"attributes,omitempty"`
	Commands         []DeviceCommand         `json:"commands,omitempty"`
	Lazy             []DeviceAttribute       `json:"lazy,omitempty"`
	StaticAttributes []StaticDeviceAttribute `json:"static_attributes,omitempty"`

	Autoprovision *bool `json:"autoprovision,omitempty"`
	ExplicitAttrs bool  `json:"explicitAttrs,omitempty"`
}

// Validate checks the group key fields.
func (g *ServiceGroup) Validate() error {
	if g.APIKey == "" {
		return fmt.Errorf("service group apikey is required")
	}
	return nil
}
