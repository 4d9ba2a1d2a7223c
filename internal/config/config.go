// Package config provides application configuration management with support for
// TOML files, .env files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/cache"
	"github.com/JaimeStill/octo/pkg/database"
	"github.com/JaimeStill/octo/pkg/logging"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// DotEnvFile is loaded into the environment when present.
	DotEnvFile = ".env"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvServiceShutdownTimeout overrides the service shutdown timeout.
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"

	// EnvServiceVersion overrides the service version.
	EnvServiceVersion = "SERVICE_VERSION"

	// EnvServiceDomain overrides the public domain of the service.
	EnvServiceDomain = "SERVICE_DOMAIN"
)

var databaseEnv = &database.Env{
	Driver:          "DATABASE_DRIVER",
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	Path:            "DATABASE_PATH",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
	AutoMigrate:     "DATABASE_AUTO_MIGRATE",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
	Output: "LOGGING_OUTPUT",
}

var cacheEnv = &cache.Env{
	Enabled: "CACHE_ENABLED",
	TTL:     "CACHE_TTL",
}

var sessionEnv = &session.Env{
	Backend:  "SESSION_BACKEND",
	RedisURL: "SESSION_REDIS_URL",
	Prefix:   "SESSION_PREFIX",
}

var agentsEnv = &agents.Env{
	FreeTierLimit:     "AGENTS_FREE_TIER_LIMIT",
	ResetPageOnSearch: "AGENTS_RESET_PAGE_ON_SEARCH",
}

// Config represents the root service configuration.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Logging         logging.Config  `toml:"logging"`
	API             APIConfig       `toml:"api"`
	Cache           cache.Config    `toml:"cache"`
	Session         session.Config  `toml:"session"`
	Agents          agents.Config   `toml:"agents"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	Domain          string          `toml:"domain"`
}

// Env returns the overlay environment name.
func (c *Config) Env() string {
	return os.Getenv(EnvServiceEnv)
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads .env when present, parses path, applies any environment-specific overlay,
// and finalizes the result. A missing path yields a configuration built from defaults
// and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg, err := load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = &Config{}
	case err != nil:
		return nil, err
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Session.Finalize(sessionEnv); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Agents.Finalize(agentsEnv); err != nil {
		return fmt.Errorf("agents: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Domain != "" {
		c.Domain = overlay.Domain
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.API.Merge(&overlay.API)
	c.Cache.Merge(&overlay.Cache)
	c.Session.Merge(&overlay.Session)
	c.Agents.Merge(&overlay.Agents)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvServiceDomain); v != "" {
		c.Domain = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
