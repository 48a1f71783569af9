// Package config provides YAML-based configuration loading with environment
// variable expansion. Flags override whatever the file carries, so every
// field doubles as a flag default.
package config

import (
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Log levels accepted by LogLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config represents a full conversion run.
type Config struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Project  string `yaml:"project"`
	Force    bool   `yaml:"force"`
	FailFast bool   `yaml:"fail_fast"`
	Validate bool   `yaml:"validate"`
	PDF      bool   `yaml:"pdf"`
	LogLevel string `yaml:"log_level"`
}

// NewDefault returns a Config with sensible default values.
func NewDefault() *Config {
	return &Config{
		LogLevel: LevelInfo,
	}
}

// Check validates the configuration.
func (c *Config) Check() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.Output, validation.Required),
		validation.Field(&c.Project, validation.Required),
		validation.Field(&c.LogLevel, validation.In(LevelDebug, LevelInfo, LevelWarn, LevelError)),
	)
}

// Level maps the configured log level name to a slog level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads a YAML file into c, expanding ${VAR} references from the
// environment first. Validation is left to Check so that flag overrides
// applied after loading are still covered.
func Load(filename string, c *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return nil
}
