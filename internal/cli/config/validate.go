package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validDrivers = []string{"sqlite", "pgx"}
	validFormats = []string{"text", "table"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database is required")
	}
	if !slices.Contains(validDrivers, c.Driver) {
		return fmt.Errorf("unknown driver %q (expected one of: %s)", c.Driver, strings.Join(validDrivers, ", "))
	}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("unknown format %q (expected one of: %s)", c.Format, strings.Join(validFormats, ", "))
	}
	return nil
}
