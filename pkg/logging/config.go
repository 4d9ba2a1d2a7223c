package logging

import (
	"os"
	"strings"
)

// Env names the environment variables that override logging settings.
type Env struct {
	Level  string
	Format string
	Output string
}

// Config selects the handler, its minimum level, and where records go.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	Output Output `toml:"output"`
}

// Finalize fills defaults, reads env overrides, then validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	c.loadEnv(env)
	c.Level = Level(strings.ToLower(string(c.Level)))
	c.Format = Format(strings.ToLower(string(c.Format)))
	c.Output = Output(strings.ToLower(string(c.Output)))
	return c.validate()
}

// Merge copies the overlay's non-empty fields onto c.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Output != "" {
		c.Output = overlay.Output
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.Output == "" {
		c.Output = OutputStdout
	}
}

func (c *Config) loadEnv(env *Env) {
	if env == nil {
		return
	}
	for name, dst := range map[string]*string{
		env.Level:  (*string)(&c.Level),
		env.Format: (*string)(&c.Format),
		env.Output: (*string)(&c.Output),
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	if err := c.Format.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}
