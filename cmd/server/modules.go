package main

import (
	"net/http"

	"github.com/JaimeStill/octo/internal/api"
	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/infrastructure"
	"github.com/JaimeStill/octo/pkg/module"
	"github.com/JaimeStill/octo/web/app"
	"github.com/JaimeStill/octo/web/scalar"
)

// Modules holds every module mounted on the root router.
type Modules struct {
	API    *module.Module
	App    *module.Module
	Scalar *module.Module
}

// NewModules builds the API, dashboard, and API reference modules.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(runtime)

	apiModule, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	var invalidators []dashboard.Invalidator
	if domain.Invalidator != nil {
		invalidators = append(invalidators, domain.Invalidator)
	}

	appModule, err := app.NewModule(app.Config{
		BasePath:          "/app",
		Agents:            domain.Agents,
		Sessions:          infra.Sessions,
		Pagination:        cfg.API.Pagination,
		ResetPageOnSearch: cfg.Agents.ResetPageOnSearch,
		Invalidators:      invalidators,
		SecureCookie:      cfg.Session.Secure,
		Logger:            infra.Logger,
		Observer:          infra.Metrics,
	})
	if err != nil {
		return nil, err
	}

	scalarModule, err := scalar.NewModule("/scalar", cfg.API.OpenAPI.Title, cfg.API.BasePath+"/openapi.json")
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		App:    appModule,
		Scalar: scalarModule,
	}, nil
}

// Mount registers every module on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app", http.StatusFound)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNative("GET /metrics", infra.Metrics.Handler().ServeHTTP)

	return router
}
