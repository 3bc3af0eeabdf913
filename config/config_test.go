package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Fiware.ContextBrokerURL != "http://localhost:1026" {
		t.Errorf("expected default context broker http://localhost:1026, got %s", cfg.Fiware.ContextBrokerURL)
	}
	if cfg.Fiware.ServicePath != "/" {
		t.Errorf("expected default service path /, got %s", cfg.Fiware.ServicePath)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Ontology.Pattern != "**/*.{ttl,nt}" {
		t.Errorf("expected default ontology pattern, got %s", cfg.Ontology.Pattern)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing context broker URL",
			modify:  func(c *Config) { c.Fiware.ContextBrokerURL = "" },
			wantErr: true,
		},
		{
			name:    "service too long",
			modify:  func(c *Config) { c.Fiware.Service = string(make([]byte, 51)) },
			wantErr: true,
		},
		{
			name:    "service path without leading slash",
			modify:  func(c *Config) { c.Fiware.ServicePath = "buildings" },
			wantErr: true,
		},
		{
			name:    "nested service path",
			modify:  func(c *Config) { c.Fiware.ServicePath = "/smart/buildings" },
			wantErr: false,
		},
		{
			name:    "wildcard service path",
			modify:  func(c *Config) { c.Fiware.ServicePath = "/#" },
			wantErr: false,
		},
		{
			name:    "non-positive timeout",
			modify:  func(c *Config) { c.HTTP.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Ontology.DebounceInterval = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
fiware:
  context_broker_url: "http://orion:1026"
  service: "smartcity"
  service_path: "/buildings"
ontology:
  dir: "/data/ontologies"
  watch: true
nats:
  url: "nats://test:4222"
http:
  timeout: 10s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Fiware.ContextBrokerURL != "http://orion:1026" {
		t.Errorf("expected context broker http://orion:1026, got %s", cfg.Fiware.ContextBrokerURL)
	}
	if cfg.Fiware.Service != "smartcity" {
		t.Errorf("expected service smartcity, got %s", cfg.Fiware.Service)
	}
	if cfg.Ontology.Dir != "/data/ontologies" {
		t.Errorf("expected ontology dir /data/ontologies, got %s", cfg.Ontology.Dir)
	}
	if !cfg.Ontology.Watch {
		t.Error("expected watch enabled")
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.HTTP.Timeout)
	}
	// Unset fields keep their defaults.
	if cfg.Fiware.IoTAgentURL != "http://localhost:4041" {
		t.Errorf("expected default IoT agent URL, got %s", cfg.Fiware.IoTAgentURL)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Fiware: FiwareConfig{
			ContextBrokerURL: "http://orion:1026",
			Service:          "energy",
		},
		NATS: NATSConfig{
			URL: "nats://broker:4222",
		},
	}

	base.Merge(override)

	if base.Fiware.ContextBrokerURL != "http://orion:1026" {
		t.Errorf("expected context broker http://orion:1026, got %s", base.Fiware.ContextBrokerURL)
	}
	if base.Fiware.Service != "energy" {
		t.Errorf("expected service energy, got %s", base.Fiware.Service)
	}
	// Fields the override didn't set remain from base
	if base.Fiware.ServicePath != "/" {
		t.Errorf("expected service path to remain default, got %s", base.Fiware.ServicePath)
	}
	if base.NATS.SubjectPrefix != "fiware.notify" {
		t.Errorf("expected subject prefix to remain default, got %s", base.NATS.SubjectPrefix)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Fiware.Service = "smartcity"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Fiware.Service != "smartcity" {
		t.Errorf("expected service smartcity, got %s", loaded.Fiware.Service)
	}
}
