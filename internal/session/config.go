package session

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Backend selects the session lookup implementation.
type Backend string

const (
	BackendStatic Backend = "static"
	BackendRedis  Backend = "redis"
)

// Token is a statically configured session.
type Token struct {
	Token  string `toml:"token"`
	UserID string `toml:"user_id"`
	Plan   Plan   `toml:"plan"`
}

// Env maps environment variable names for session configuration.
type Env struct {
	Backend  string
	RedisURL string
	Prefix   string
}

// Config selects and configures the session lookup.
type Config struct {
	Backend  Backend `toml:"backend"`
	RedisURL string  `toml:"redis_url"`
	Prefix   string  `toml:"prefix"`
	Secure   bool    `toml:"secure_cookie"`
	Tokens   []Token `toml:"tokens"`
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
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.RedisURL != "" {
		c.RedisURL = overlay.RedisURL
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	if overlay.Secure {
		c.Secure = true
	}
	if len(overlay.Tokens) > 0 {
		c.Tokens = overlay.Tokens
	}
}

// Sessions converts the configured tokens. Finalize must succeed first.
func (c *Config) Sessions() []Session {
	sessions := make([]Session, 0, len(c.Tokens))
	for _, t := range c.Tokens {
		sessions = append(sessions, Session{
			UserID: uuid.MustParse(t.UserID),
			Plan:   t.Plan,
			Token:  t.Token,
		})
	}
	return sessions
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendStatic
	}
	if c.Prefix == "" {
		c.Prefix = "octo:session:"
	}
	if c.RedisURL == "" {
		c.RedisURL = "redis://localhost:6379/0"
	}
	for i := range c.Tokens {
		if c.Tokens[i].Plan == "" {
			c.Tokens[i].Plan = PlanFree
		}
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = Backend(v)
		}
	}
	if env.RedisURL != "" {
		if v := os.Getenv(env.RedisURL); v != "" {
			c.RedisURL = v
		}
	}
	if env.Prefix != "" {
		if v := os.Getenv(env.Prefix); v != "" {
			c.Prefix = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendStatic, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	for i, t := range c.Tokens {
		if t.Token == "" {
			return fmt.Errorf("tokens[%d]: token required", i)
		}
		if _, err := uuid.Parse(t.UserID); err != nil {
			return fmt.Errorf("tokens[%d]: invalid user_id: %w", i, err)
		}
		if err := t.Plan.Validate(); err != nil {
			return fmt.Errorf("tokens[%d]: %w", i, err)
		}
	}
	return nil
}
