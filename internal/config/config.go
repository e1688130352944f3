// Package config loads and validates the client configuration using Viper.
//
// Configuration is layered: built-in defaults < YAML config file < environment
// variables. Environment variables use the NGOCONNECT_ prefix (e.g.,
// NGOCONNECT_API_BASE_URL overrides api.base_url in the YAML), so the CLI and the
// mock service can run from a config.yaml locally and from pure environment
// variables in containers.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ngoconnect/ngoconnect/internal/remote"
)

// Config holds all application configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Commands  CommandsConfig  `mapstructure:"commands"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	MockAPI   MockAPIConfig   `mapstructure:"mock_api"`
}

// APIConfig points the client at the remote service
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig controls where the authenticated session is persisted
type SessionConfig struct {
	// Backend is one of "file", "redis", or "memory"
	Backend string             `mapstructure:"backend"`
	File    SessionFileConfig  `mapstructure:"file"`
	Redis   SessionRedisConfig `mapstructure:"redis"`
	// SigningSecret signs the session marker. When empty the file backend generates
	// one beside the session file and the memory backend uses a per-process secret.
	SigningSecret string `mapstructure:"signing_secret"`
	// EncryptionKey seals persisted records at rest (64 hex chars or a passphrase)
	EncryptionKey string `mapstructure:"encryption_key"`
}

// SessionFileConfig holds the file persister settings
type SessionFileConfig struct {
	Path string `mapstructure:"path"`
}

// SessionRedisConfig holds the redis persister settings
type SessionRedisConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

// CommandsConfig holds dispatcher behaviour
type CommandsConfig struct {
	// DiscardStaleSettlements drops a settlement when a newer command of the same
	// kind has been issued since
	DiscardStaleSettlements bool `mapstructure:"discard_stale_settlements"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TelemetryConfig holds metrics configuration
type TelemetryConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	PrometheusPort int  `mapstructure:"prometheus_port"`
}

// MockAPIConfig configures the in-memory development service
type MockAPIConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// bindEnvVars explicitly binds environment variables to config keys.
// This is necessary because AutomaticEnv() doesn't work well with nested structs during Unmarshal.
func bindEnvVars(v *viper.Viper) error {
	keys := []string{
		// API
		"api.base_url",
		"api.timeout",

		// Session
		"session.backend",
		"session.file.path",
		"session.redis.url",
		"session.redis.key",
		"session.signing_secret",
		"session.encryption_key",

		// Commands
		"commands.discard_stale_settlements",

		// Logging
		"logging.level",
		"logging.format",
		"logging.output",

		// Telemetry
		"telemetry.metrics.enabled",
		"telemetry.metrics.prometheus_port",

		// Mock API
		"mock_api.host",
		"mock_api.port",
		"mock_api.admin_email",
		"mock_api.admin_password",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", key, err)
		}
	}
	return nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/ngoconnect")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment variables
	}

	v.SetEnvPrefix("NGOCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Expand environment variables in sensitive fields
	cfg.Session.SigningSecret = expandEnv(cfg.Session.SigningSecret)
	cfg.Session.EncryptionKey = expandEnv(cfg.Session.EncryptionKey)
	cfg.Session.Redis.URL = expandEnv(cfg.Session.Redis.URL)
	cfg.MockAPI.AdminPassword = expandEnv(cfg.MockAPI.AdminPassword)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "http://localhost:8081")
	v.SetDefault("api.timeout", "30s")

	// Session defaults
	v.SetDefault("session.backend", "file")
	v.SetDefault("session.file.path", defaultSessionPath())
	v.SetDefault("session.redis.key", "session:ngoconnect")

	// Commands defaults
	v.SetDefault("commands.discard_stale_settlements", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	// Telemetry defaults
	v.SetDefault("telemetry.metrics.enabled", true)
	v.SetDefault("telemetry.metrics.prometheus_port", 9090)

	// Mock API defaults
	v.SetDefault("mock_api.host", "127.0.0.1")
	v.SetDefault("mock_api.port", 8081)
	v.SetDefault("mock_api.admin_email", "admin@ngoconnect.local")
}

// defaultSessionPath places the session file in the user's config directory
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".ngoconnect-session.json"
	}
	return dir + "/ngoconnect/session.json"
}

// expandEnv expands environment variables in the format ${VAR_NAME}
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate API
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if err := remote.ValidateBaseURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	// Validate session backend
	switch c.Session.Backend {
	case "memory":
	case "file":
		if c.Session.File.Path == "" {
			return fmt.Errorf("session.file.path is required when using file backend")
		}
	case "redis":
		if c.Session.Redis.URL == "" {
			return fmt.Errorf("session.redis.url is required when using redis backend")
		}
		if c.Session.Redis.Key == "" {
			return fmt.Errorf("session.redis.key is required when using redis backend")
		}
		// the file backend generates its own secret; a shared redis session needs one configured
		if c.Session.SigningSecret == "" {
			return fmt.Errorf("session.signing_secret is required when using redis backend")
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be file, redis, or memory)", c.Session.Backend)
	}

	// Validate logging
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be json or text)", c.Logging.Format)
	}

	// Validate mock API
	if c.MockAPI.Port < 1 || c.MockAPI.Port > 65535 {
		return fmt.Errorf("invalid mock_api port: %d", c.MockAPI.Port)
	}
	if c.Telemetry.Metrics.Enabled && (c.Telemetry.Metrics.PrometheusPort < 1 || c.Telemetry.Metrics.PrometheusPort > 65535) {
		return fmt.Errorf("invalid telemetry.metrics.prometheus_port: %d", c.Telemetry.Metrics.PrometheusPort)
	}

	return nil
}

// GetAddress returns the mock service address in host:port format
func (c *MockAPIConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetBaseURL returns the URL clients use to reach the mock service
func (c *MockAPIConfig) GetBaseURL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Port)
}
