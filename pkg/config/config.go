// Package config provides unified configuration for the chatshim bridge.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (CHATSHIM_ prefix)
//  4. Backward-compatible env var mapping for legacy OPENAI_* names
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import "time"

// Config holds all configuration for the chatshim bridge.
type Config struct {
	Backend       BackendConfig       `yaml:"backend"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// BackendConfig holds Chat Completions backend settings.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`        // default: "http://127.0.0.1:8000"
	EndpointPath   string `yaml:"endpoint_path"`   // default: "/v1/chat/completions"
	Model          string `yaml:"model"`           // overrides the per-request model when set
	APIKey         string `yaml:"api_key"`         // optional bearer token
	APIKeyFile     string `yaml:"api_key_file"`    // _file variant for api_key
	TimeoutSeconds int    `yaml:"timeout_seconds"` // default: 120
}

// ServerConfig holds HTTP server settings (serve mode only).
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 150s
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LoggingConfig holds debug logging settings.
type LoggingConfig struct {
	Debug string `yaml:"debug"` // comma-separated debug categories
	Level string `yaml:"level"` // slog level, default: "INFO"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:8000",
			EndpointPath:   "/v1/chat/completions",
			TimeoutSeconds: 120,
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 150 * time.Second,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}
