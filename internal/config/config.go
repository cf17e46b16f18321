// Package config loads explorer settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-exoplanets/internal/exo"
)

// Config is the top-level explorer configuration.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	Limit    int           `yaml:"limit"` // max planets placed; 0 places all
	FPS      int           `yaml:"fps"`
	Stars    int           `yaml:"stars"`
	Seed     uint64        `yaml:"seed"` // 0 picks a random seed per run
	Logging  LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls log level and destination.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty discards logs in the TUI
}

// Defaults.
const (
	DefaultLimit = 150
	DefaultFPS   = 30
	DefaultStars = 400
	MaxFPS       = 120
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint: exo.DefaultEndpoint,
		Timeout:  exo.DefaultTimeout,
		Limit:    DefaultLimit,
		FPS:      DefaultFPS,
		Stars:    DefaultStars,
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills zero values a file may have blanked.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an http(s) URL", c.Endpoint)
	}
	if c.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	if c.Stars < 0 {
		return errors.New("stars must not be negative")
	}
	if c.FPS > MaxFPS {
		return fmt.Errorf("fps must be at most %d", MaxFPS)
	}
	return nil
}
