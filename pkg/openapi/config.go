package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config describes how the agents API presents itself in its generated document.
// Servers lists extra base URLs, such as a public gateway, advertised next to the service domain.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

// ConfigEnv names the variables that override Config. Servers is read as a comma-separated list.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overlays non-empty fields. A non-empty overlay server list replaces the base list.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if len(overlay.Servers) > 0 {
		c.Servers = overlay.Servers
	}
}

// Apply copies the description and server list onto spec.
func (c *Config) Apply(spec *Spec) {
	spec.SetDescription(c.Description)
	for _, s := range c.Servers {
		spec.AddServer(s)
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Octo API"
	}
	if c.Description == "" {
		c.Description = "Agents owned by the signed-in user."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.Title != "" {
		if v := os.Getenv(env.Title); v != "" {
			c.Title = v
		}
	}
	if env.Description != "" {
		if v := os.Getenv(env.Description); v != "" {
			c.Description = v
		}
	}
	if env.Servers != "" {
		if v := os.Getenv(env.Servers); v != "" {
			c.Servers = nil
			for s := range strings.SplitSeq(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					c.Servers = append(c.Servers, s)
				}
			}
		}
	}
}

func (c *Config) validate() error {
	for _, s := range c.Servers {
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("server %q must be an absolute http or https URL", s)
		}
	}
	return nil
}
