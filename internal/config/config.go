// Package config loads proxy configuration from environment variables,
// layered over struct defaults with koanf.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the full proxy configuration.
type Config struct {
	// Port is the HTTP listening port.
	Port int `koanf:"port"`

	// NASAAPIKey is the api.nasa.gov key. The shared public demo key
	// works without registration but has a low rate limit.
	NASAAPIKey string `koanf:"nasa_api_key"`

	// OpenAIAPIKey is the optional AI credential. When empty the AI
	// endpoints serve deterministic local fallback responses.
	OpenAIAPIKey string `koanf:"openai_api_key"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`

	// LogPretty enables human-readable console logs instead of JSON.
	LogPretty bool `koanf:"log_pretty"`

	// CacheTTL is how long cached upstream responses stay valid.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheSweepInterval is the period of the expired-entry sweep.
	// Zero disables the background sweep.
	CacheSweepInterval time.Duration `koanf:"cache_sweep_interval"`

	// UpstreamTimeout is the per-request timeout for upstream calls.
	UpstreamTimeout time.Duration `koanf:"upstream_timeout"`

	// LiveUpdateInterval is the push cadence of the live-update channel.
	LiveUpdateInterval time.Duration `koanf:"live_update_interval"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by environment variables.
func defaultConfig() *Config {
	return &Config{
		Port:               5000,
		NASAAPIKey:         "DEMO_KEY",
		OpenAIAPIKey:       "",
		CORSOrigins:        []string{"*"},
		LogLevel:           "info",
		LogPretty:          false,
		CacheTTL:           300 * time.Second,
		CacheSweepInterval: 10 * time.Minute,
		UpstreamTimeout:    30 * time.Second,
		LiveUpdateInterval: 10 * time.Second,
	}
}

// Load builds the configuration from defaults and environment variables.
// Environment variable names map directly to config keys:
// PORT -> port, NASA_API_KEY -> nasa_api_key, CACHE_TTL -> cache_ttl.
// Durations accept Go syntax ("300s", "5m").
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: environment variables (highest priority)
	envProvider := env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Env vars come in as strings; slice fields need splitting.
	if err := splitSliceField(k, "cors_origins"); err != nil {
		return nil, fmt.Errorf("process cors_origins: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// splitSliceField converts a comma-separated string value at path into a
// string slice, so CORS_ORIGINS="http://a,http://b" yields two origins.
// Values already loaded as slices (the struct defaults) are left alone.
func splitSliceField(k *koanf.Koanf, path string) error {
	val := k.Get(path)
	strVal, ok := val.(string)
	if !ok || strVal == "" {
		return nil
	}

	parts := strings.Split(strVal, ",")
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return k.Set(path, trimmed)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	if c.CacheSweepInterval < 0 {
		return fmt.Errorf("cache_sweep_interval must not be negative, got %v", c.CacheSweepInterval)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream_timeout must be positive, got %v", c.UpstreamTimeout)
	}
	if c.LiveUpdateInterval <= 0 {
		return fmt.Errorf("live_update_interval must be positive, got %v", c.LiveUpdateInterval)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AIEnabled reports whether an AI credential is configured.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}
