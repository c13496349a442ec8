// Package config provides configuration loading for the totem client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// InitViper initializes Viper with the configuration file and environment variables.
// If configFile is empty, it searches for totem.yaml/.yml in standard locations.
// The search requires an explicit YAML extension to avoid matching the binary
// itself, which Viper's built-in SetConfigName would match.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file found in any standard location.
		// Set name/type without search paths so ReadInConfig returns
		// ConfigFileNotFoundError (handled gracefully by callers).
		viper.SetConfigName("totem")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: TOTEM_BACKEND_BASE_URL
	viper.SetEnvPrefix("TOTEM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a totem config file
// with an explicit YAML extension (.yaml or .yml).
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".totem"),
		"/etc/totem",
	}
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "totem"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds all config keys for environment variable support.
// Example: TOTEM_BACKEND_BASE_URL overrides backend.base_url
func bindNestedEnvKeys() {
	_ = viper.BindEnv("backend.base_url")
	_ = viper.BindEnv("backend.timeout")
	_ = viper.BindEnv("session.path")
	_ = viper.BindEnv("server.addr")
	_ = viper.BindEnv("server.log_level")
	_ = viper.BindEnv("dev_mode")
}

// LoadConfig reads the configuration file, applies environment
// overrides and defaults, and validates the result.
func LoadConfig() (*Config, error) {
	cfg, err := LoadConfigRaw()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigRaw reads the configuration file and applies defaults, but
// does NOT validate. Use this when CLI flags may override values
// before validation.
func LoadConfigRaw() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with env vars only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// ConfigFileUsed returns the path to the configuration file that was loaded.
// Returns an empty string if no config file was found (env vars only mode).
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// WriteDefault writes a commented starter config to the given path.
// Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	cfg := &Config{}
	cfg.SetDefaults()
	cfg.Backend.BaseURL = "http://localhost:8081/api"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	header := []byte("# totem client configuration\n# Environment overrides use the TOTEM_ prefix, e.g. TOTEM_BACKEND_BASE_URL.\n")
	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
