// Package config holds the mprisctl configuration, loaded through viper
// from flags, environment variables (MPRISCTL_*), and an optional YAML file
// under the user's config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/aldenhart/mprisctl/internal/render"
)

// Config represents the complete mprisctl configuration
type Config struct {
	// Format is the status template. See the render package for the
	// template language.
	Format string `mapstructure:"format"`
	// Limit truncates rendered output to this display width in terminal
	// cells. Zero disables truncation.
	Limit int `mapstructure:"limit"`
	// Exclude lists players to hide, as MPRIS name suffixes ("spotify")
	// or full bus names.
	Exclude []string `mapstructure:"exclude"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig controls diagnostic output on stderr
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Format:  render.DefaultTemplate,
		Limit:   30,
		Exclude: []string{},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("format", defaults.Format)
	viper.SetDefault("limit", defaults.Limit)
	viper.SetDefault("exclude", defaults.Exclude)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mprisctl")
	}
	// Fall back to ~/.config/mprisctl
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mprisctl"
	}
	return filepath.Join(home, ".config", "mprisctl")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
