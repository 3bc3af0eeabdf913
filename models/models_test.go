package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"plain id", "Room1", false},
		{"urn id", "urn:ngsi-ld:Room:001", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 257), true},
		{"whitespace", "Room 1", true},
		{"angle bracket", "Room<1>", true},
		{"ampersand", "a&b", true},
		{"question mark", "a?b", true},
		{"slash", "a/b", true},
		{"hash", "a#b", true},
		{"quote", `a"b`, true},
		{"semicolon", "a;b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldValue(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldValue(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAttributeName(t *testing.T) {
	if err := ValidateAttributeName("temperature"); err != nil {
		t.Errorf("temperature should be valid: %v", err)
	}
	for _, reserved := range []string{"id", "type"} {
		if err := ValidateAttributeName(reserved); err == nil {
			t.Errorf("%q should be rejected as reserved", reserved)
		}
	}
}

func TestContextEntityRoundTrip(t *testing.T) {
	entity, err := NewContextEntity("Room1", "Room")
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.SetAttribute("temperature", ContextAttribute{
		Type:  AttrTypeNumber,
		Value: 21.5,
		Metadata: map[string]Metadata{
			"unitCode": {Type: AttrTypeText, Value: "CEL"},
		},
	}); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(entity)
	if err != nil {
		t.Fatal(err)
	}

	// Attributes must be flattened next to id and type on the wire.
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "type", "temperature"} {
		if _, ok := flat[key]; !ok {
			t.Errorf("wire form missing key %q: %s", key, data)
		}
	}

	var decoded ContextEntity
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != "Room1" || decoded.Type != "Room" {
		t.Errorf("decoded id/type = %s/%s", decoded.ID, decoded.Type)
	}
	attr, ok := decoded.Attributes["temperature"]
	if !ok {
		t.Fatal("temperature attribute lost in round trip")
	}
	if attr.Type != AttrTypeNumber {
		t.Errorf("attribute type = %s", attr.Type)
	}
	if attr.Metadata["unitCode"].Value != "CEL" {
		t.Errorf("metadata = %+v", attr.Metadata)
	}
}

func TestNewContextEntityRejectsBadFields(t *testing.T) {
	if _, err := NewContextEntity("Room 1", "Room"); err == nil {
		t.Error("id with whitespace should be rejected")
	}
	if _, err := NewContextEntity("Room1", "Room&Board"); err == nil {
		t.Error("type with forbidden character should be rejected")
	}
}

func TestSubscriptionValidate(t *testing.T) {
	valid := func() *Subscription {
		return &Subscription{
			Description: "room changes",
			Subject: Subject{
				Entities: []EntityPattern{{IDPattern: ".*", Type: "Room"}},
				Condition: &Condition{
					Attrs: []string{"temperature"},
				},
			},
			Notification: Notification{
				HTTP:  &HTTPEndpoint{URL: "http://localhost:8080/notify"},
				Attrs: []string{"temperature"},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid subscription rejected: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Subscription)
	}{
		{"no entities", func(s *Subscription) { s.Subject.Entities = nil }},
		{"id and idPattern", func(s *Subscription) {
			s.Subject.Entities[0].ID = "Room1"
		}},
		{"neither id nor idPattern", func(s *Subscription) {
			s.Subject.Entities[0].IDPattern = ""
		}},
		{"type and typePattern", func(s *Subscription) {
			s.Subject.Entities[0].TypePattern = "Roo.*"
		}},
		{"no endpoint", func(s *Subscription) {
			s.Notification.HTTP = nil
		}},
		{"two endpoints", func(s *Subscription) {
			s.Notification.MQTT = &MQTTEndpoint{URL: "mqtt://broker:1883", Topic: "rooms"}
		}},
		{"attrs and exceptAttrs", func(s *Subscription) {
			s.Notification.ExceptAttrs = []string{"humidity"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMQTTNotificationValidate(t *testing.T) {
	tests := []struct {
		name    string
		ep      MQTTEndpoint
		wantErr bool
	}{
		{"valid", MQTTEndpoint{URL: "mqtt://broker:1883", Topic: "rooms", QoS: 1}, false},
		{"tls scheme", MQTTEndpoint{URL: "mqtts://broker:8883", Topic: "rooms"}, false},
		{"http scheme", MQTTEndpoint{URL: "http://broker:1883", Topic: "rooms"}, true},
		{"missing topic", MQTTEndpoint{URL: "mqtt://broker:1883"}, true},
		{"bad qos", MQTTEndpoint{URL: "mqtt://broker:1883", Topic: "rooms", QoS: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := tt.ep
			n := Notification{MQTT: &ep}
			err := n.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeviceValidate(t *testing.T) {
	device := &Device{
		DeviceID:   "sensor01",
		EntityName: "urn:ngsi-ld:Sensor:001",
		EntityType: "Sensor",
		Transport:  TransportMQTT,
		Attributes: []DeviceAttribute{{ObjectID: "t", Name: "temperature", Type: AttrTypeNumber}},
	}
	if err := device.Validate(); err != nil {
		t.Fatalf("valid device rejected: %v", err)
	}

	device.Transport = "CoAP"
	if err := device.Validate(); err == nil {
		t.Error("unknown transport should be rejected")
	}

	if err := (&Device{DeviceID: "x"}).Validate(); err == nil {
		t.Error("device without entity mapping should be rejected")
	}
}

func TestNotifyMessageDecode(t *testing.T) {
	payload := `{
		"subscriptionId": "57458eb60962ef754e7c0998",
		"data": [{"id": "Room1", "type": "Room", "temperature": {"type": "Number", "value": 23}}]
	}`

	var msg NotifyMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.SubscriptionID != "57458eb60962ef754e7c0998" {
		t.Errorf("subscription id = %s", msg.SubscriptionID)
	}
	if len(msg.Data) != 1 || msg.Data[0].ID != "Room1" {
		t.Fatalf("data = %+v", msg.Data)
	}
	if _, ok := msg.Data[0].Attributes["temperature"]; !ok {
		t.Error("notification entity lost its attributes")
	}
}
