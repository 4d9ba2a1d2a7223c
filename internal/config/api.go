package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"

	"github.com/JaimeStill/octo/pkg/middleware"
	"github.com/JaimeStill/octo/pkg/openapi"
	"github.com/JaimeStill/octo/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
	Servers:     "API_OPENAPI_SERVERS",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MinPageSize:     "API_PAGINATION_MIN_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}

type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes parses MaxBodySize, e.g. "1MB", into bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	n, _ := units.FromHumanSize(c.MaxBodySize)
	return n
}

func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if n, err := units.FromHumanSize(c.MaxBodySize); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_body_size %q", c.MaxBodySize)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
