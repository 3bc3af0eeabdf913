// Package config provides configuration loading and management for figo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete figo configuration
type Config struct {
	Fiware   FiwareConfig   `yaml:"fiware"`
	Ontology OntologyConfig `yaml:"ontology"`
	NATS     NATSConfig     `yaml:"nats"`
	Notify   NotifyConfig   `yaml:"notify"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// FiwareConfig configures the FIWARE platform endpoints and tenancy
type FiwareConfig struct {
	// ContextBrokerURL is the NGSI-v2 context broker endpoint (e.g. Orion)
	ContextBrokerURL string `yaml:"context_broker_url"`
	// IoTAgentURL is the IoT agent north port endpoint
	IoTAgentURL string `yaml:"iot_agent_url"`
	// QuantumLeapURL is the time series API endpoint
	QuantumLeapURL string `yaml:"quantum_leap_url"`
	// Service is the fiware-service tenant header
	Service string `yaml:"service"`
	// ServicePath is the fiware-servicepath scope header (default: /)
	ServicePath string `yaml:"service_path"`
}

// OntologyConfig configures the vocabulary source directory
type OntologyConfig struct {
	// Dir is the directory holding ontology documents
	Dir string `yaml:"dir"`
	// Pattern is the doublestar glob selecting ontology files inside Dir
	Pattern string `yaml:"pattern"`
	// Watch enables rebuilding the vocabulary when files under Dir change
	Watch bool `yaml:"watch"`
	// DebounceInterval is how long to wait after the last file event
	// before rebuilding
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// NATSConfig configures the NATS connection used for notification relaying
type NATSConfig struct {
	// URL is the NATS server URL (empty = relaying disabled)
	URL string `yaml:"url"`
	// SubjectPrefix is prepended to the per-entity-type subject
	SubjectPrefix string `yaml:"subject_prefix"`
}

// NotifyConfig configures the NGSI notification receiver
type NotifyConfig struct {
	// ListenAddr is the bind address of the notification HTTP endpoint
	ListenAddr string `yaml:"listen_addr"`
	// Path is the URL path notifications are posted to
	Path string `yaml:"path"`
}

// HTTPConfig configures the outgoing HTTP clients
type HTTPConfig struct {
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`
}

// servicePathPattern matches NGSI-v2 service paths: slash-separated
// word segments, or the /# wildcard.
var servicePathPattern = regexp.MustCompile(`^((/\w*)|(/#))+$|^/$`)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Fiware: FiwareConfig{
			ContextBrokerURL: "http://localhost:1026",
			IoTAgentURL:      "http://localhost:4041",
			QuantumLeapURL:   "http://localhost:8668",
			Service:          "",
			ServicePath:      "/",
		},
		Ontology: OntologyConfig{
			Dir:              "ontologies",
			Pattern:          "**/*.{ttl,nt}",
			Watch:            false,
			DebounceInterval: 500 * time.Millisecond,
		},
		NATS: NATSConfig{
			URL:           "",
			SubjectPrefix: "fiware.notify",
		},
		Notify: NotifyConfig{
			ListenAddr: ":8080",
			Path:       "/notify",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Fiware.ContextBrokerURL == "" {
		return fmt.Errorf("fiware.context_broker_url is required")
	}
	if len(c.Fiware.Service) > 50 {
		return fmt.Errorf("fiware.service must be at most 50 characters")
	}
	if c.Fiware.ServicePath != "" && !servicePathPattern.MatchString(c.Fiware.ServicePath) {
		return fmt.Errorf("fiware.service_path %q is not a valid NGSI service path", c.Fiware.ServicePath)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.Ontology.DebounceInterval < 0 {
		return fmt.Errorf("ontology.debounce_interval must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Fiware
	if other.Fiware.ContextBrokerURL != "" {
		c.Fiware.ContextBrokerURL = other.Fiware.ContextBrokerURL
	}
	if other.Fiware.IoTAgentURL != "" {
		c.Fiware.IoTAgentURL = other.Fiware.IoTAgentURL
	}
	if other.Fiware.QuantumLeapURL != "" {
		c.Fiware.QuantumLeapURL = other.Fiware.QuantumLeapURL
	}
	if other.Fiware.Service != "" {
		c.Fiware.Service = other.Fiware.Service
	}
	if other.Fiware.ServicePath != "" {
		c.Fiware.ServicePath = other.Fiware.ServicePath
	}

	// Ontology
	if other.Ontology.Dir != "" {
		c.Ontology.Dir = other.Ontology.Dir
	}
	if other.Ontology.Pattern != "" {
		c.Ontology.Pattern = other.Ontology.Pattern
	}
	if other.Ontology.Watch {
		c.Ontology.Watch = true
	}
	if other.Ontology.DebounceInterval != 0 {
		c.Ontology.DebounceInterval = other.Ontology.DebounceInterval
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.SubjectPrefix != "" {
		c.NATS.SubjectPrefix = other.NATS.SubjectPrefix
	}

	// Notify
	if other.Notify.ListenAddr != "" {
		c.Notify.ListenAddr = other.Notify.ListenAddr
	}
	if other.Notify.Path != "" {
		c.Notify.Path = other.Notify.Path
	}

	// HTTP
	if other.HTTP.Timeout != 0 {
		c.HTTP.Timeout = other.HTTP.Timeout
	}
}
