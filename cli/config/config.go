// Package config handles YAML config file loading for the tagstream tool.
package config

import (
	"fmt"
	"time"
)

// Config represents a tagstream.yaml configuration file.
// All values are optional and act as defaults for command flags.
// CLI flags always override config values.
type Config struct {
	// Corpus is the sample corpus: a file path for the fs backend, an
	// object key for s3.
	Corpus    string        `yaml:"corpus"`
	Format    string        `yaml:"format"`
	Type      string        `yaml:"type"`
	Generator string        `yaml:"generator"`
	Window    WindowConfig  `yaml:"window"`
	Params    string        `yaml:"params"`
	Stage     string        `yaml:"stage"`
	Storage   StorageConfig `yaml:"storage"`
	Adapter   AdapterConfig `yaml:"adapter"`
	LogLevel  string        `yaml:"log_level"`
}

// WindowConfig holds the additional-context window radius.
type WindowConfig struct {
	Before *int `yaml:"before,omitempty"`
	After  *int `yaml:"after,omitempty"`
}

// StorageConfig holds storage defaults from the config file.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// AdapterConfig holds adapter defaults from the config file.
type AdapterConfig struct {
	Type      string   `yaml:"type"`
	URL       string   `yaml:"url"`
	Channel   string   `yaml:"channel,omitempty"`
	KeyPrefix string   `yaml:"key_prefix,omitempty"`
	TTL       Duration `yaml:"ttl,omitempty"`
	Timeout   Duration `yaml:"timeout,omitempty"`
	Retries   *int     `yaml:"retries,omitempty"`
}

// Storage backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// AdapterRedis is the only supported adapter type.
const AdapterRedis = "redis"

// Validate checks enumerated values. Empty values are valid and mean
// "use the flag default".
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "", BackendFS, BackendS3:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (must be fs or s3)", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendS3 && c.Storage.Path == "" {
		return fmt.Errorf("storage.path: s3 backend requires bucket[/prefix]")
	}
	switch c.Adapter.Type {
	case "", AdapterRedis:
	default:
		return fmt.Errorf("adapter.type: unknown adapter %q (must be redis)", c.Adapter.Type)
	}
	if c.Adapter.Type != "" && c.Adapter.URL == "" {
		return fmt.Errorf("adapter.url: required for %s adapter", c.Adapter.Type)
	}
	if c.Window.Before != nil && *c.Window.Before < 0 {
		return fmt.Errorf("window.before: must be >= 0, got %d", *c.Window.Before)
	}
	if c.Window.After != nil && *c.Window.After < 0 {
		return fmt.Errorf("window.after: must be >= 0, got %d", *c.Window.After)
	}
	return nil
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
