package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// backend.base_url must be an absolute http(s) URL.
	if c.Backend.BaseURL == "" {
		errs = append(errs, fmt.Errorf("backend.base_url is required"))
	} else {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("backend.base_url must be an absolute http(s) URL, got %q", c.Backend.BaseURL))
		}
	}

	// backend.endpoint_path must be rooted.
	if c.Backend.EndpointPath != "" && !strings.HasPrefix(c.Backend.EndpointPath, "/") {
		errs = append(errs, fmt.Errorf("backend.endpoint_path must start with \"/\", got %q", c.Backend.EndpointPath))
	}

	// backend.timeout_seconds must be positive.
	if c.Backend.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("backend.timeout_seconds must be > 0, got %d", c.Backend.TimeoutSeconds))
	}

	// server.port must be a valid TCP port.
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}

	return errors.Join(errs...)
}
