package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/internal/infrastructure"
	"github.com/JaimeStill/octo/internal/server"
	"github.com/JaimeStill/octo/pkg/middleware"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    server.New(&cfg.Server, buildMiddleware().Apply(router), infra.Logger),
	}, nil
}

// buildMiddleware creates the stack wrapped around the whole router.
func buildMiddleware() middleware.System {
	sys := middleware.New()
	sys.Use(recoverer)
	return sys
}

// recoverer turns a panicking handler into a 500 instead of a dropped connection.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Start begins all subsystems and returns when they are ready.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
