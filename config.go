package sessiongate

import (
	"errors"
	"time"
)

// Config defines engine-wide settings. Config instances are intended to be
// configured during initialization and then treated as immutable.
type Config struct {
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// SessionConfig controls session capacity and lifetime.
type SessionConfig struct {
	// RedisPrefix namespaces every cache key.
	RedisPrefix string
	// MaxConcurrentSessions bounds the per-user session list. Logging in
	// past the cap evicts the oldest live token.
	MaxConcurrentSessions int
	// TokenTTLDays is the cache-entry lifetime, converted to seconds for
	// the Redis TTL. Expiry is passive: the cache engine's clock removes
	// the entry, nothing sweeps the session list.
	TokenTTLDays int
}

// TokenTTL returns the configured token lifetime as a duration.
func (c SessionConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLDays) * 24 * time.Hour
}

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the engine defaults: cap of 3 concurrent sessions
// per user, 7-day token TTL, audit and metrics off.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			RedisPrefix:           "sg",
			MaxConcurrentSessions: 3,
			TokenTTLDays:          7,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

// Validate checks the configuration for values the engine cannot operate
// with.
func (c Config) Validate() error {
	if c.Session.RedisPrefix == "" {
		return errors.New("session redis prefix required")
	}
	if c.Session.MaxConcurrentSessions < 1 {
		return errors.New("max concurrent sessions must be at least 1")
	}
	if c.Session.TokenTTLDays < 1 {
		return errors.New("token ttl must be at least 1 day")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 1 {
		return errors.New("audit buffer size must be at least 1")
	}
	return nil
}
