package sessiongate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Session struct {
		RedisPrefix           string `yaml:"redis_prefix"`
		MaxConcurrentSessions *int   `yaml:"max_concurrent_sessions"`
		TokenTTLDays          *int   `yaml:"token_ttl_days"`
	} `yaml:"session"`
	Audit struct {
		Enabled    *bool `yaml:"enabled"`
		BufferSize *int  `yaml:"buffer_size"`
		DropIfFull *bool `yaml:"drop_if_full"`
	} `yaml:"audit"`
	Metrics struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// LoadConfigFile reads a YAML file and overlays it on the default
// configuration. Absent keys keep their defaults, so a minimal file only
// needs the values it changes.
func LoadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if fc.Session.RedisPrefix != "" {
		cfg.Session.RedisPrefix = fc.Session.RedisPrefix
	}
	if fc.Session.MaxConcurrentSessions != nil {
		cfg.Session.MaxConcurrentSessions = *fc.Session.MaxConcurrentSessions
	}
	if fc.Session.TokenTTLDays != nil {
		cfg.Session.TokenTTLDays = *fc.Session.TokenTTLDays
	}
	if fc.Audit.Enabled != nil {
		cfg.Audit.Enabled = *fc.Audit.Enabled
	}
	if fc.Audit.BufferSize != nil {
		cfg.Audit.BufferSize = *fc.Audit.BufferSize
	}
	if fc.Audit.DropIfFull != nil {
		cfg.Audit.DropIfFull = *fc.Audit.DropIfFull
	}
	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
