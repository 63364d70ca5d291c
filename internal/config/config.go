// Package config provides configuration loading for the shopctl admin client.
//
// Configuration is deliberately small: where the API lives, where the session
// record is kept, how chatty the logs are, and whether to expose metrics.
// Everything else the client needs comes from the server at runtime.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level configuration for shopctl.
type Config struct {
	// API configures the marketplace admin API endpoint.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Session configures where the login record is persisted.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Metrics configures the optional Prometheus listener.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// APIConfig configures the admin API endpoint.
type APIConfig struct {
	// BaseURL is the versioned base URL of the admin API
	// (e.g., "https://api.example.com").
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the per-request timeout (e.g., "15s", "1m").
	// Defaults to "15s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	// Path is the session file location.
	// Defaults to "~/.shopctl/session.json".
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty.
	Level string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// MetricsConfig configures the optional Prometheus exposition endpoint.
// When Addr is empty, no listener is started.
type MetricsConfig struct {
	// Addr is the address to serve /metrics on (e.g., "127.0.0.1:9185").
	Addr string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	if c.API.Timeout == "" {
		c.API.Timeout = "15s"
	}
	if c.Session.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Session.Path = filepath.Join(home, ".shopctl", "session.json")
		} else {
			c.Session.Path = "session.json"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// APITimeout returns the parsed request timeout, falling back to 15 seconds
// on an unparseable value.
func (c *Config) APITimeout() time.Duration {
	if d, err := time.ParseDuration(c.API.Timeout); err == nil {
		return d
	}
	return 15 * time.Second
}
