// Package models defines the NGSI-v2 payload types exchanged with the
// FIWARE platform: context entities, subscriptions, IoT devices, and time
// series records, together with the field validation rules the platform
// enforces.
package models

import (
	"encoding/json"
	"fmt"
)

// Attribute types defined by NGSI-v2.
const (
	AttrTypeText     = "Text"
	AttrTypeNumber   = "Number"
	AttrTypeBoolean  = "Boolean"
	AttrTypeDateTime = "DateTime"
	AttrTypeGeoPoint = "geo:point"
	AttrTypeGeoJSON  = "geo:json"
	AttrTypeRelation = "Relationship"
	AttrTypeStructed = "StructuredValue"
)

// Metadata annotates an attribute value, for example a unit code or an
// accuracy figure.
type Metadata struct {
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

// ContextAttribute is one attribute of a context entity.
type ContextAttribute struct {
	Type     string              `json:"type,omitempty"`
	Value    any                 `json:"value"`
	Metadata map[string]Metadata `json:"metadata,omitempty"`
}

// ContextEntity is an NGSI-v2 context entity. On the wire the attributes
// are flattened next to id and type; the custom codec below folds them
// into the Attributes map.
type ContextEntity struct {
	ID         string
	Type       string
	Attributes map[string]ContextAttribute
}

// NewContextEntity creates an entity after validating its identifier and
// type against the platform field rules.
func NewContextEntity(id, entityType string) (*ContextEntity, error) {
	if err := ValidateFieldValue(id); err != nil {
		return nil, fmt.Errorf("entity id: %w", err)
	}
	if err := ValidateFieldValue(entityType); err != nil {
		return nil, fmt.Errorf("entity type: %w", err)
	}
	return &ContextEntity{
		ID:         id,
		Type:       entityType,
		Attributes: make(map[string]ContextAttribute),
	}, nil
}

// SetAttribute validates the attribute name and records the attribute.
func (e *ContextEntity) SetAttribute(name string, attr ContextAttribute) error {
	if err := ValidateAttributeName(name); err != nil {
		return err
	}
	if e.Attributes == nil {
		e.Attributes = make(map[string]ContextAttribute)
	}
	e.Attributes[name] = attr
	return nil
}

// MarshalJSON writes the NGSI-v2 wire form with attributes flattened
// alongside id and type.
func (e ContextEntity) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(e.Attributes)+2)
	flat["id"] = e.ID
	flat["type"] = e.Type
	for name, attr := range e.Attributes {
		flat[name] = attr
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reads the NGSI-v2 wire form, folding every non-reserved
// key into the attribute map.
func (e *ContextEntity) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	if raw, ok := flat["id"]; ok {
		if err := json.Unmarshal(raw, &e.ID); err != nil {
			return fmt.Errorf("entity id: %w", err)
		}
	}
	if raw, ok := flat["type"]; ok {
		if err := json.Unmarshal(raw, &e.Type); err != nil {
			return fmt.Errorf("entity type: %w", err)
		}
	}

	e.Attributes = make(map[string]ContextAttribute)
	for key, raw := range flat {
		if key == "id" || key == "type" {
			continue
		}
		var attr ContextAttribute
		if err := json.Unmarshal(raw, &attr); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		e.Attributes[key] = attr
	}
	return nil
}
