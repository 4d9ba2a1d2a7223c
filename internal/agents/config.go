package agents

import (
	"os"
	"strconv"
)

// DefaultFreeTierLimit is the number of agents a free plan may own.
const DefaultFreeTierLimit = 3

// Env maps environment variable names for agent configuration.
type Env struct {
	FreeTierLimit     string
	ResetPageOnSearch string
}

// Config holds agent entitlement and list behavior settings.
type Config struct {
	// FreeTierLimit caps agents per free-plan owner. Negative disables the cap.
	FreeTierLimit int `toml:"free_tier_limit"`
	// ResetPageOnSearch returns list views to page 1 when the search text changes.
	ResetPageOnSearch bool `toml:"reset_page_on_search"`
}

// Finalize applies defaults and environment overrides.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.FreeTierLimit != 0 {
		c.FreeTierLimit = overlay.FreeTierLimit
	}
	if overlay.ResetPageOnSearch {
		c.ResetPageOnSearch = true
	}
}

// Limit returns the effective cap, or 0 when there is none.
func (c *Config) Limit() int {
	if c.FreeTierLimit < 0 {
		return 0
	}
	return c.FreeTierLimit
}

func (c *Config) loadDefaults() {
	if c.FreeTierLimit == 0 {
		c.FreeTierLimit = DefaultFreeTierLimit
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.FreeTierLimit != "" {
		if v := os.Getenv(env.FreeTierLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.FreeTierLimit = n
			}
		}
	}
	if env.ResetPageOnSearch != "" {
		if v := os.Getenv(env.ResetPageOnSearch); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.ResetPageOnSearch = b
			}
		}
	}
}
