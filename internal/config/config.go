// Package config loads and validates the hueify configuration: the ordered
// filter rules, the level-to-color mapping, trace traversal bounds, and the
// tool's own logging. Configuration is declarative here; compiling rules
// into matchers happens in the engine package so that pattern errors surface
// exactly once, at engine construction.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete hueify configuration
type Config struct {
	Rules   []RuleSpec    `mapstructure:"rules"`
	Colors  ColorsConfig  `mapstructure:"colors"`
	Trace   TraceConfig   `mapstructure:"trace"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RuleSpec is one uncompiled filter rule as written in configuration.
// Rule order is precedence order: the last matching rule wins.
type RuleSpec struct {
	// Pattern is matched against a frame's location and symbol.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	// Action is "keep" or "drop".
	Action string `mapstructure:"action" yaml:"action"`
	// Match selects the matcher kind: "prefix" (default), "glob", or "regex".
	Match string `mapstructure:"match" yaml:"match,omitempty"`
}

// ColorsConfig controls the level-to-color-tag mapping for record headers
type ColorsConfig struct {
	// Levels maps log level names to color tag names, e.g. error: "error",
	// warning: "warning". Unmapped levels render unstyled.
	Levels map[string]string `mapstructure:"levels"`
}

// TraceConfig controls chain traversal behavior
type TraceConfig struct {
	// MaxChainDepth bounds cause-chain traversal to guard against cyclic
	// input (default: 32)
	MaxChainDepth int `mapstructure:"max_chain_depth"`
}

// RenderConfig controls rendered output details
type RenderConfig struct {
	// TimeFormat is the Go time layout for record header timestamps
	// (default: "2006-01-02 15:04:05")
	TimeFormat string `mapstructure:"time_format"`
}

// LoggingConfig controls hueify's own diagnostic logging
type LoggingConfig struct {
	// Enabled controls whether diagnostic logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log destination; empty logs to stderr
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Rules: nil, // no filtering until the user configures rules
		Colors: ColorsConfig{
			Levels: map[string]string{
				"debug":    "muted",
				"info":     "info",
				"warn":     "warning",
				"warning":  "warning",
				"error":    "error",
				"critical": "error",
			},
		},
		Trace: TraceConfig{
			MaxChainDepth: 32,
		},
		Render: RenderConfig{
			TimeFormat: "2006-01-02 15:04:05",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// SetDefaults registers the default values on the global viper instance so
// they apply even without a config file.
func SetDefaults() {
	setDefaultsOn(viper.GetViper())
}

// setDefaultsOn registers defaults on a specific viper instance.
func setDefaultsOn(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("colors.levels", defaults.Colors.Levels)
	v.SetDefault("trace.max_chain_depth", defaults.Trace.MaxChainDepth)
	v.SetDefault("render.time_format", defaults.Render.TimeFormat)
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
}

// ConfigDir returns the directory for the user's hueify config file.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "hueify")
}

// Load unmarshals and validates configuration from the global viper
// instance, which cobra's initConfig has already pointed at the config file
// and environment.
func Load() (*Config, error) {
	return loadFrom(viper.GetViper())
}

// LoadFile reads and validates a specific config file using a private viper
// instance, leaving global state untouched. The watcher uses this on reload
// so a broken edit never corrupts the running configuration.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaultsOn(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return loadFrom(v)
}

// loadFrom unmarshals and validates from a viper instance.
func loadFrom(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return cfg, nil
}
