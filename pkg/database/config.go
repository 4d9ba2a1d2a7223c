package database

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/octo/pkg/query"
)

// Env maps environment variable names for database configuration.
type Env struct {
	Driver          string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	Path            string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
	AutoMigrate     string
}

// Config contains database connection configuration.
// Driver selects Postgres (host, port, name, user, password) or SQLite (path).
type Config struct {
	Driver          query.Dialect `toml:"driver"`
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	Name            string        `toml:"name"`
	User            string        `toml:"user"`
	Password        string        `toml:"password"`
	Path            string        `toml:"path"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime string        `toml:"conn_max_lifetime"`
	ConnTimeout     string        `toml:"conn_timeout"`
	AutoMigrate     bool          `toml:"auto_migrate"`
}

// ConnMaxLifetimeDuration parses and returns the connection max lifetime.
func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnMaxLifetime)
	return d
}

// ConnTimeoutDuration parses and returns the connection timeout.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// DriverName returns the database/sql driver registered for the configured dialect.
func (c *Config) DriverName() string {
	if c.Driver == query.SQLite {
		return "sqlite"
	}
	return "pgx"
}

// Dsn returns the connection string for the configured driver.
func (c *Config) Dsn() string {
	if c.Driver == query.SQLite {
		params := url.Values{}
		params.Add("_pragma", "busy_timeout(5000)")
		params.Add("_pragma", "foreign_keys(1)")
		return "file:" + c.Path + "?" + params.Encode()
	}
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		c.Host, c.Port, c.Name, c.User, c.Password,
	)
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.MaxOpenConns != 0 {
		c.MaxOpenConns = overlay.MaxOpenConns
	}
	if overlay.MaxIdleConns != 0 {
		c.MaxIdleConns = overlay.MaxIdleConns
	}
	if overlay.ConnMaxLifetime != "" {
		c.ConnMaxLifetime = overlay.ConnMaxLifetime
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
	if overlay.AutoMigrate {
		c.AutoMigrate = true
	}
}

func (c *Config) loadDefaults() {
	if c.Driver == "" {
		c.Driver = query.Postgres
	}
	if c.Driver == query.SQLite {
		if c.Path == "" {
			c.Path = "octo.db"
		}
		if c.MaxOpenConns == 0 {
			c.MaxOpenConns = 1
		}
		if c.MaxIdleConns == 0 {
			c.MaxIdleConns = 1
		}
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == "" {
		c.ConnMaxLifetime = "15m"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Driver); v != "" {
		c.Driver = query.Dialect(v)
	}
	if v := getenv(env.Host); v != "" {
		c.Host = v
	}
	if v := getenv(env.Port); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := getenv(env.Name); v != "" {
		c.Name = v
	}
	if v := getenv(env.User); v != "" {
		c.User = v
	}
	if v := getenv(env.Password); v != "" {
		c.Password = v
	}
	if v := getenv(env.Path); v != "" {
		c.Path = v
	}
	if v := getenv(env.MaxOpenConns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxOpenConns = n
		}
	}
	if v := getenv(env.MaxIdleConns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIdleConns = n
		}
	}
	if v := getenv(env.ConnMaxLifetime); v != "" {
		c.ConnMaxLifetime = v
	}
	if v := getenv(env.ConnTimeout); v != "" {
		c.ConnTimeout = v
	}
	if v := getenv(env.AutoMigrate); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoMigrate = b
		}
	}
}

func getenv(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}

func (c *Config) validate() error {
	if err := c.Driver.Validate(); err != nil {
		return err
	}
	if c.Driver == query.Postgres {
		if c.Name == "" {
			return fmt.Errorf("name required")
		}
		if c.User == "" {
			return fmt.Errorf("user required")
		}
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	return nil
}
