package models

import (
	"fmt"
	"strings"
	"time"
)

// Subscription statuses reported by the context broker.
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
	SubscriptionExpired  = "expired"
	SubscriptionFailed   = "failed"
)

// Attribute formats for notification payloads.
const (
	AttrsFormatNormalized = "normalized"
	AttrsFormatKeyValues  = "keyValues"
	AttrsFormatValues     = "values"
)

// EntityPattern selects entities for a subscription, by exact id or id
// pattern, optionally narrowed by type or type pattern.
type EntityPattern struct {
	ID          string `json:"id,omitempty"`
	IDPattern   string `json:"idPattern,omitempty"`
	Type        string `json:"type,omitempty"`
	TypePattern string `json:"typePattern,omitempty"`
}

// Expression is a query filter on attribute values.
type Expression struct {
	Q        string `json:"q,omitempty"`
	MQ       string `json:"mq,omitempty"`
	Georel   string `json:"georel,omitempty"`
	Geometry string `json:"geometry,omitempty"`
	Coords   string `json:"coords,omitempty"`
}

// Condition narrows which attribute changes trigger notifications.
type Condition struct {
	Attrs      []string    `json:"attrs,omitempty"`
	Expression *Expression `json:"expression,omitempty"`
}

// Subject describes what a subscription observes.
type Subject struct {
	Entities  []EntityPattern `json:"entities"`
	Condition *Condition      `json:"condition,omitempty"`
}

// HTTPEndpoint is the plain HTTP notification target.
type HTTPEndpoint struct {
	URL string `json:"url"`
}

// HTTPCustomEndpoint is an HTTP target with templated method, headers,
// query parameters, and payload.
type HTTPCustomEndpoint struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Qs      map[string]string `json:"qs,omitempty"`
	Method  string            `json:"method,omitempty"`
	Payload string            `json:"payload,omitempty"`
}

// MQTTEndpoint is the MQTT notification target. The URL carries the broker
// address (mqtt://host:port), Topic the destination topic.
type MQTTEndpoint struct {
	URL    string `json:"url"`
	Topic  string `json:"topic"`
	QoS    int    `json:"qos,omitempty"`
	User   string `json:"user,omitempty"`
	Passwd string `json:"passwd,omitempty"`
}

// MQTTCustomEndpoint is an MQTT target with a templated payload.
type MQTTCustomEndpoint struct {
	MQTTEndpoint
	Payload string `json:"payload,omitempty"`
}

// Notification describes where and how notifications are delivered.
// Exactly one of HTTP, HTTPCustom, MQTT, and MQTTCustom must be set.
type Notification struct {
	HTTP       *HTTPEndpoint       `json:"http,omitempty"`
	HTTPCustom *HTTPCustomEndpoint `json:"httpCustom,omitempty"`
	MQTT       *MQTTEndpoint       `json:"mqtt,omitempty"`
	MQTTCustom *MQTTCustomEndpoint `json:"mqttCustom,omitempty"`

	// Attrs lists the attributes to include; ExceptAttrs lists the ones
	// to exclude. The two are mutually exclusive.
	Attrs       []string `json:"attrs,omitempty"`
	ExceptAttrs []string `json:"exceptAttrs,omitempty"`

	AttrsFormat string     `json:"attrsFormat,omitempty"`
	Metadata    []string   `json:"metadata,omitempty"`
	OnlyChanged bool       `json:"onlyChangedAttrs,omitempty"`
	TimesSent   int64      `json:"timesSent,omitempty"`
	LastSent    *time.Time `json:"lastNotification,omitempty"`
	LastSuccess *time.Time `json:"lastSuccess,omitempty"`
	LastFailure *time.Time `json:"lastFailure,omitempty"`
}

// Validate enforces the notification target and attribute rules.
func (n *Notification) Validate() error {
	targets := 0
	if n.HTTP != nil {
		targets++
	}
	if n.HTTPCustom != nil {
		targets++
	}
	if n.MQTT != nil {
		targets++
	}
	if n.MQTTCustom != nil {
		targets++
	}
	if targets != 1 {
		return fmt.Errorf("notification needs exactly one target endpoint, got %d", targets)
	}

	if len(n.Attrs) > 0 && len(n.ExceptAttrs) > 0 {
		return fmt.Errorf("attrs and exceptAttrs are mutually exclusive")
	}

	if n.MQTT != nil {
		if err := validateMQTT(n.MQTT); err != nil {
			return err
		}
	}
	if n.MQTTCustom != nil {
		if err := validateMQTT(&n.MQTTCustom.MQTTEndpoint); err != nil {
			return err
		}
	}
	return nil
}

func validateMQTT(ep *MQTTEndpoint) error {
	if !strings.HasPrefix(ep.URL, "mqtt://") && !strings.HasPrefix(ep.URL, "mqtts://") {
		return fmt.Errorf("mqtt url %q must use the mqtt or mqtts scheme", ep.URL)
	}
	if ep.Topic == "" {
		return fmt.Errorf("mqtt topic is required")
	}
	if ep.QoS < 0 || ep.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1, or 2, got %d", ep.QoS)
	}
	return nil
}

// Subscription is an NGSI-v2 subscription.
type Subscription struct {
	ID           string       `json:"id,omitempty"`
	Description  string       `json:"description,omitempty"`
	Subject      Subject      `json:"subject"`
	Notification Notification `json:"notification"`
	Expires      *time.Time   `json:"expires,omitempty"`
	Status       string       `json:"status,omitempty"`
	Throttling   int64        `json:"throttling,omitempty"`
}

// Validate checks the subscription structure before it is sent to the
// broker.
func (s *Subscription) Validate() error {
	if len(s.Subject.Entities) == 0 {
		return fmt.Errorf("subscription subject needs at least one entity pattern")
	}
	for i, e := range s.Subject.Entities {
		if (e.ID == "") == (e.IDPattern == "") {
			return fmt.Errorf("subject entity %d needs exactly one of id and idPattern", i)
		}
		if e.Type != "" && e.TypePattern != "" {
			return fmt.Errorf("subject entity %d cannot have both type and typePattern", i)
		}
	}
	return s.Notification.Validate()
}

// NotifyMessage is the payload the broker posts to notification endpoints.
type NotifyMessage struct {
	SubscriptionID string          `json:"subscriptionId"`
	Data           []ContextEntity `json:"data"`
}
