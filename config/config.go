// Package config loads client settings from a YAML file and the
// environment.
//
// It is the only place that reads RESCALE_* variables; the rescale package
// itself takes its API key explicitly.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/abhimamg/rescale-go"
)

// Environment variables that override file settings.
const (
	EnvAPIKey  = "RESCALE_API_KEY"
	EnvBaseURL = "RESCALE_BASE_URL"
)

// Config holds client settings.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultPath returns $XDG_CONFIG_HOME/rescale/config.yaml, falling back
// to ~/.config/rescale/config.yaml. It returns "" when neither location
// can be determined.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "rescale", "config.yaml")
}

// Load reads the YAML file at path and applies environment overrides.
// An empty path means [DefaultPath]; a missing file is not an error.
// Without a usable path only the environment is read.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}

	f, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// Options converts the settings to client options. Unset fields keep the
// client defaults.
func (c Config) Options() []rescale.Option {
	var opts []rescale.Option
	if c.BaseURL != "" {
		opts = append(opts, rescale.WithBaseURL(c.BaseURL))
	}
	if c.Timeout > 0 {
		opts = append(opts, rescale.WithTimeout(c.Timeout))
	}
	return opts
}

// NewClient builds a client from the settings. Extra options are applied
// after the configured ones.
func (c Config) NewClient(logger zerolog.Logger, extra ...rescale.Option) *rescale.Client {
	opts := append(c.Options(), rescale.WithLogger(logger))
	opts = append(opts, extra...)
	return rescale.NewClient(c.APIKey, opts...)
}
