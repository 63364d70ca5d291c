package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		API: APIConfig{BaseURL: "https://api.example.com"},
	}
	cfg.SetDefaults()
	return cfg
}

func TestConfig_Validate_Valid(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantSub: "BaseURL is required",
		},
		{
			name:    "base URL not a URL",
			mutate:  func(c *Config) { c.API.BaseURL = "not a url" },
			wantSub: "must be a valid URL",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantSub: "must be one of",
		},
		{
			name:    "bad metrics addr",
			mutate:  func(c *Config) { c.Metrics.Addr = "no-port-here" },
			wantSub: "must be a valid host:port",
		},
		{
			name:    "unparseable timeout",
			mutate:  func(c *Config) { c.API.Timeout = "soon" },
			wantSub: "api.timeout",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantSub)
			}
		})
	}
}

func TestConfig_Validate_OptionalFieldsEmpty(t *testing.T) {
	t.Parallel()

	// Metrics addr and log level are optional; empty must validate.
	cfg := Config{API: APIConfig{BaseURL: "https://api.example.com"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil for optional fields empty", err)
	}
}
