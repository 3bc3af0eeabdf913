package models

import (
	"fmt"
	"strings"
)

// forbiddenFieldRunes are disallowed in identifiers and type names: they
// would break URL or query-language syntax on the platform side.
const forbiddenFieldRunes = `<>"'=;()&?/#`

// reservedAttributeNames cannot be used as attribute names because they
// collide with NGSI-v2 keywords.
var reservedAttributeNames = map[string]bool{
	"id":       true,
	"type":     true,
	"geo:json": true,
}

// ValidateFieldValue checks an entity id, entity type, or metadata name
// against the NGSI-v2 field restrictions: length 1 to 256, printable ASCII
// without syntax characters, no whitespace.
func ValidateFieldValue(value string) error {
	if len(value) == 0 {
		return fmt.Errorf("field must not be empty")
	}
	if len(value) > 256 {
		return fmt.Errorf("field exceeds 256 characters")
	}
	for _, r := range value {
		if r <= 0x20 || r == 0x7f {
			return fmt.Errorf("field %q contains whitespace or control characters", value)
		}
		if strings.ContainsRune(forbiddenFieldRunes, r) {
			return fmt.Errorf("field %q contains forbidden character %q", value, r)
		}
	}
	return nil
}

// ValidateAttributeName checks an attribute name: the field rules plus the
// reserved-name restriction.
func ValidateAttributeName(name string) error {
	if reservedAttributeNames[name] {
		return fmt.Errorf("attribute name %q is reserved", name)
	}
	return ValidateFieldValue(name)
}
