// ABOUTME: Runtime configuration for touchbase
// ABOUTME: Layers defaults, an XDG JSON file, a .env file and TOUCHBASE_ environment variables
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

const (
	// AppName names the XDG directories touchbase uses.
	AppName = "touchbase"

	// ConfigFileName is the file looked up under the XDG config directory.
	ConfigFileName = "config.json"

	// EnvPrefix is prepended to every environment override, e.g. TOUCHBASE_HTTP_PORT.
	EnvPrefix = "TOUCHBASE"
)

// Log formats.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds process settings. None of it is application state.
type Config struct {
	HTTPPort int `json:"http_port" envconfig:"HTTP_PORT"`

	// Timezone is an IANA name used to decide calendar days. "Local" uses
	// the machine's zone.
	Timezone string `json:"timezone" envconfig:"TIMEZONE"`

	// RecentLimit is how many completed communications the dashboard shows per company.
	RecentLimit int `json:"recent_limit" envconfig:"RECENT_LIMIT"`

	// DefaultPeriodicity applies when the add-company form leaves it empty.
	DefaultPeriodicity int `json:"default_periodicity" envconfig:"DEFAULT_PERIODICITY"`

	LogLevel  string `json:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `json:"log_format" envconfig:"LOG_FORMAT"`
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTPPort:           8080,
		Timezone:           "Local",
		RecentLimit:        5,
		DefaultPeriodicity: 14,
		LogLevel:           "info",
		LogFormat:          LogFormatAuto,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/touchbase/config.json.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// Load builds the effective configuration. An empty path means DefaultPath,
// which is allowed to be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	// Variables already in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port %d", c.HTTPPort)
	}
	if c.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be positive, got %d", c.RecentLimit)
	}
	if c.DefaultPeriodicity < 1 {
		return fmt.Errorf("default_periodicity must be positive, got %d", c.DefaultPeriodicity)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported log_format %q", c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// HTTPAddr returns the listen address for the web UI.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Save writes the config as indented JSON, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// MarshalZerologObject lets callers log the effective configuration with
// Event.EmbedObject.
func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	e.Int("http_port", c.HTTPPort).
		Str("timezone", c.Timezone).
		Int("recent_limit", c.RecentLimit).
		Int("default_periodicity", c.DefaultPeriodicity).
		Str("log_level", c.LogLevel).
		Str("log_format", c.LogFormat)
}
