package api

import (
	"net/http"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/openapi"
	"github.com/JaimeStill/octo/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	basePath string,
) {
	agentsHandler := agents.NewHandler(domain.Agents, runtime.Logger)
	sessionHandler := session.NewHandler(runtime.Logger)

	routes.Register(
		mux,
		basePath,
		spec,
		agentsHandler.Routes(),
		sessionHandler.Routes(),
	)
}
