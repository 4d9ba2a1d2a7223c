package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Env maps environment variable names for cache configuration.
type Env struct {
	Enabled string
	TTL     string
}

// Config controls whether query results are cached and for how long.
type Config struct {
	Enabled bool   `toml:"enabled"`
	TTL     string `toml:"ttl"`
}

// TTLDuration parses and returns the entry lifetime.
func (c *Config) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *Config) loadDefaults() {
	if c.TTL == "" {
		c.TTL = "5m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = b
			}
		}
	}
	if env.TTL != "" {
		if v := os.Getenv(env.TTL); v != "" {
			c.TTL = v
		}
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("ttl cannot be negative")
	}
	return nil
}
