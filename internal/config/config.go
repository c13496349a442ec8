// Package config provides configuration types for the totem client.
//
// Configuration is deliberately small: where the backend lives, where
// the session file lives, and how the local front server listens.
// Everything about business data is owned by the backend.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level configuration for the totem client.
type Config struct {
	// Backend configures the café REST API the client talks to.
	Backend BackendConfig `yaml:"backend" mapstructure:"backend"`

	// Session configures where credentials are persisted.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// Server configures the local front server (totem serve).
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// DevMode enables development features (verbose logging, etc).
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// BackendConfig locates the café REST API.
type BackendConfig struct {
	// BaseURL is the API root, e.g. "https://api.doistemposcafe.com.br".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	// Timeout bounds each request, e.g. "30s". Default: "30s".
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty"`
}

// RequestTimeout parses Timeout, falling back to 30s on empty or
// unparseable values. Validation has already rejected bad syntax.
func (b BackendConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(b.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// SessionConfig locates the credentials file.
type SessionConfig struct {
	// Path is the credentials file location.
	// Default: "$HOME/.totem/session.json".
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the local front server.
type ServerConfig struct {
	// Addr is the listen address. Default: "127.0.0.1:8080".
	Addr string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
	// LogLevel is one of debug, info, warn, error. Default: "info".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Backend.Timeout == "" {
		c.Backend.Timeout = "30s"
	}
	if c.Session.Path == "" {
		c.Session.Path = defaultSessionPath()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
}

// defaultSessionPath returns $HOME/.totem/session.json, falling back
// to the working directory when the home directory is unknown.
func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".totem", "session.json")
}
