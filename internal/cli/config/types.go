// Package config provides configuration management for the lookup CLI.
//
// Values are layered from defaults, an optional YAML file, LOOKUP_ environment
// variables and explicitly set command-line flags, in increasing precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	DatabasePath string `koanf:"database"`
	Driver       string `koanf:"driver"`
	Format       string `koanf:"format"`
	HistoryFile  string `koanf:"history_file"`
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
}

// Default configuration values.
const (
	DefaultDatabase = "HyperionDev.db"
	DefaultDriver   = "sqlite"
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
	EnvPrefix       = "LOOKUP_"
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DatabasePath: DefaultDatabase,
		Driver:       DefaultDriver,
		Format:       DefaultFormat,
		LogLevel:     DefaultLogLevel,
	}
}
