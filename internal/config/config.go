// Package config loads the client configuration: YAML file first,
// then environment overrides, then validation. A missing file is not
// an error; the defaults are a working setup for a local service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

const (
	defaultServiceURL = "http://localhost:8000"
	defaultTimeoutSec = 15
	defaultTopK       = 10
	defaultTheme      = "auto"
)

// Config drives the client. Zero-valued fields fall back to defaults
// before validation.
type Config struct {
	ServiceURL     string `yaml:"service_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	SearchTopK     int    `yaml:"search_top_k"`
	Theme          string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServiceURL:     defaultServiceURL,
		TimeoutSeconds: defaultTimeoutSec,
		SearchTopK:     defaultTopK,
		Theme:          defaultTheme,
	}
}

// DefaultPath is the conventional config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "docpane", "config.yaml")
}

// Load reads the file at path, layering defaults, file values, and
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout is the per-request deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the field ranges and the service URL shape.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ServiceURL, validation.Required, is.URL),
		validation.Field(&c.TimeoutSeconds, validation.Min(1), validation.Max(600)),
		validation.Field(&c.SearchTopK, validation.Min(1), validation.Max(100)),
		validation.Field(&c.Theme, validation.In("auto", "dark", "light")),
	)
}

func (c *Config) applyDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = defaultServiceURL
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSec
	}
	if c.SearchTopK == 0 {
		c.SearchTopK = defaultTopK
	}
	if c.Theme == "" {
		c.Theme = defaultTheme
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DOCPANE_SERVICE_URL"); v != "" {
		c.ServiceURL = v
	}
	if v := os.Getenv("DOCPANE_TIMEOUT_SECONDS"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = sec
		}
	}
	if v := os.Getenv("DOCPANE_THEME"); v != "" {
		c.Theme = v
	}
}
