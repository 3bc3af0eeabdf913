// Package core provides the shared plumbing for all FIWARE component
// clients: multi-tenancy headers, the base HTTP client, and the common
// error surface.
package core

import (
	"fmt"
	"net/http"
	"regexp"
)

// Header names defined by the NGSI-v2 multi-tenancy conventions.
const (
	HeaderService     = "fiware-service"
	HeaderServicePath = "fiware-servicepath"
	HeaderCorrelator  = "fiware-correlator"
)

// servicePattern matches valid tenant names: alphanumerics and underscore.
var servicePattern = regexp.MustCompile(`^\w*$`)

// servicePathPattern matches slash-separated word segments or the /#
// wildcard.
var servicePathPattern = regexp.MustCompile(`^((/\w*)|(/#))+$|^/$|^$`)

// FiwareHeader carries the tenant and scope every request is issued under.
type FiwareHeader struct {
	// Service is the fiware-service tenant, at most 50 characters.
	Service string `json:"service" yaml:"service"`

	// ServicePath is the fiware-servicepath hierarchy scope, e.g.
	// "/buildings/floor1" or the "/#" wildcard.
	ServicePath string `json:"service_path" yaml:"service_path"`
}

// Validate checks the header fields against the NGSI-v2 rules.
func (h FiwareHeader) Validate() error {
	if len(h.Service) > 50 {
		return fmt.Errorf("fiware-service must be at most 50 characters, got %d", len(h.Service))
	}
	if !servicePattern.MatchString(h.Service) {
		return fmt.Errorf("fiware-service %q contains invalid characters", h.Service)
	}
	if !servicePathPattern.MatchString(h.ServicePath) {
		return fmt.Errorf("fiware-servicepath %q is not a valid service path", h.ServicePath)
	}
	return nil
}

// Apply sets the tenancy headers on an outgoing request. Empty fields are
// omitted so the platform defaults apply.
func (h FiwareHeader) Apply(req *http.Request) {
	if h.Service != "" {
		req.Header.Set(HeaderService, h.Service)
	}
	if h.ServicePath != "" {
		req.Header.Set(HeaderServicePath, h.ServicePath)
	}
}
