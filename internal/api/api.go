// Package api assembles the JSON API module.
package api

import (
	"net/http"

	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/middleware"
	"github.com/JaimeStill/octo/pkg/module"
	"github.com/JaimeStill/octo/pkg/openapi"
)

// NewModule builds the API module: agent and session routes, the generated
// OpenAPI document, and the module middleware stack.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.AddServer(cfg.Domain)
	cfg.API.OpenAPI.Apply(spec)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg.API.BasePath)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Metrics(runtime.Metrics, cfg.API.BasePath))
	m.Use(middleware.MaxBody(cfg.API.MaxBodySizeBytes()))
	m.Use(session.Middleware(runtime.Sessions, runtime.Logger))

	return m, nil
}
