// ABOUTME: Configuration loading and parsing for moodlog
// ABOUTME: Supports YAML files with environment variable expansion and defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the complete moodlog configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Report   ReportConfig   `yaml:"report"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds password gate configuration
type AuthConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig holds analytics report configuration
type ReportConfig struct {
	TrendWindowWeeks int `yaml:"trend_window_weeks"`
}

// Default returns the configuration used when no config file exists:
// database under the XDG data directory, 3 password attempts, info-level
// text logging, a 4-week trend window.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dataDir(), "moodlog.db")},
		Auth:     AuthConfig{MaxAttempts: 3},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Report:   ReportConfig{TrendWindowWeeks: 4},
	}
}

// dataDir returns the moodlog data directory.
// Priority: XDG_DATA_HOME/moodlog > ~/.local/share/moodlog
func dataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "moodlog")
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// Fields left unset fall back to the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Auth.MaxAttempts <= 0 {
		return fmt.Errorf("auth.max_attempts must be positive, got %d", c.Auth.MaxAttempts)
	}
	if c.Report.TrendWindowWeeks <= 0 {
		return fmt.Errorf("report.trend_window_weeks must be positive, got %d", c.Report.TrendWindowWeeks)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
