package api

import (
	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/pkg/cache"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Agents agents.System

	// Invalidator drops cached agent queries; nil when caching is disabled.
	Invalidator *agents.Coordinator
}

// NewDomain creates all domain systems from the API runtime.
// With caching enabled, agent reads go through a Coordinator that memoizes them per owner.
func NewDomain(runtime *Runtime) *Domain {
	repo := agents.NewRepository(runtime.Database.Connection(), runtime.Database.Dialect())

	agentsSys := agents.New(
		repo,
		runtime.Logger,
		runtime.Pagination,
		runtime.Agents,
		agents.WithObserver(runtime.Metrics),
	)

	if !runtime.Cache.Enabled {
		return &Domain{Agents: agentsSys}
	}

	coord := agents.NewCoordinator(
		agentsSys,
		runtime.Pagination,
		cache.WithTTL(runtime.Cache.TTLDuration()),
		cache.WithRecorder(runtime.Metrics),
	)
	return &Domain{Agents: coord, Invalidator: coord}
}
