package api

import (
	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/internal/infrastructure"
	"github.com/JaimeStill/octo/pkg/cache"
	"github.com/JaimeStill/octo/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Cache      cache.Config
	Agents     agents.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Cache:          cfg.Cache,
		Agents:         cfg.Agents,
	}
}
