// Package pagination provides page requests, page results, and the
// URL-bound filter state used by list views.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// ConfigEnv maps environment variable names for pagination configuration.
type ConfigEnv struct {
	DefaultPageSize string
	MinPageSize     string
	MaxPageSize     string
}

// Config holds the default page size and the accepted page size range.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MinPageSize     int `toml:"min_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay onto the receiver.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MinPageSize != 0 {
		c.MinPageSize = overlay.MinPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 10
	}
	if c.MinPageSize <= 0 {
		c.MinPageSize = 1
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	envInt(env.DefaultPageSize, &c.DefaultPageSize)
	envInt(env.MinPageSize, &c.MinPageSize)
	envInt(env.MaxPageSize, &c.MaxPageSize)
}

func envInt(key string, target *int) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func (c *Config) validate() error {
	if c.MinPageSize < 1 {
		return fmt.Errorf("min_page_size must be positive")
	}
	if c.MaxPageSize < c.MinPageSize {
		return fmt.Errorf("max_page_size cannot be less than min_page_size")
	}
	if c.DefaultPageSize < c.MinPageSize || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size must be between %d and %d", c.MinPageSize, c.MaxPageSize)
	}
	return nil
}
