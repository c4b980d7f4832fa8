package config

import (
	"errors"
	"fmt"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: PostgreSQL connection (libpq-compatible PG* variables)
//   - export.go: Output directory, naming and cursor settings
//   - observability.go: Logging and metrics
type AppConfig struct {
	// Database configuration
	Postgres DBConfig `envPrefix:"PG"`

	// Export configuration
	Export ExportConfig `envPrefix:"EXPORT_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Postgres.Sanitize()
	c.Export.Sanitize()
	c.Observability.Sanitize()
}

// Validate reports configuration that cannot be repaired by Sanitize.
func (c *AppConfig) Validate() error {
	if c == nil {
		return errors.New("config is required")
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config: %w", err)
	}
	return nil
}
