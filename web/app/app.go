// Package app provides the dashboard web module with embedded templates and assets.
package app

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/middleware"
	"github.com/JaimeStill/octo/pkg/module"
	"github.com/JaimeStill/octo/pkg/pagination"
	"github.com/JaimeStill/octo/pkg/web"
)

//go:embed static/*
var staticFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app.html"

var views = []web.PageDef{
	{Route: "/{$}", Template: "home.html", Title: "Home"},
	{Route: "/agents", Template: "agents.html", Title: "Agents"},
	{Route: "/agents/new", Template: "new.html", Title: "New Agent"},
	{Route: "/calendar", Template: "calendar.html", Title: "Calendar"},
	{Route: "/meetings", Template: "meetings.html", Title: "Meetings"},
	{Route: "/prices", Template: "prices.html", Title: "Prices"},
	{Route: "/signin", Template: "signin.html", Title: "Sign In"},
}

var (
	noticeView = web.PageDef{Template: "notice.html", Title: "Notice"}
	notFound   = web.PageDef{Template: "404.html", Title: "Not Found"}
)

// Config holds the systems the dashboard renders from.
type Config struct {
	BasePath   string
	Agents     agents.System
	Sessions   session.Lookup
	Pagination pagination.Config

	// ResetPageOnSearch returns the list to page 1 when the search text changes.
	ResetPageOnSearch bool

	// Invalidators are notified after an agent is created. May be empty.
	Invalidators []dashboard.Invalidator

	SecureCookie bool
	Logger       *slog.Logger

	// Observer receives request metrics when set.
	Observer middleware.RequestObserver

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewModule creates the dashboard module mounted at cfg.BasePath.
func NewModule(cfg Config) (*module.Module, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	all := append(append([]web.PageDef{}, views...), noticeView, notFound)
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		cfg.BasePath,
		funcs,
		all,
	)
	if err != nil {
		return nil, fmt.Errorf("app templates: %w", err)
	}

	h := &handler{
		cfg:       cfg,
		templates: ts,
		logger:    cfg.Logger.With("module", "app"),
	}
	h.flows = newFlows(cfg.Agents, h.newFlow)

	m := module.New(cfg.BasePath, h.router())
	m.Use(middleware.TrimSlash())
	m.Use(middleware.Logger(h.logger))
	if cfg.Observer != nil {
		m.Use(middleware.Metrics(cfg.Observer, cfg.BasePath))
	}
	m.Use(session.Middleware(cfg.Sessions, h.logger))
	return m, nil
}

func (h *handler) router() http.Handler {
	r := web.NewRouter()
	r.SetFallback(h.templates.ErrorHandler(layout, notFound.Template, http.StatusNotFound, notFound.Title))

	r.HandleFunc("GET /{$}", h.home)
	r.HandleFunc("GET /agents", h.protect(h.agents))
	r.HandleFunc("GET /agents/new", h.protect(h.newAgent))
	r.HandleFunc("POST /agents/new", h.protect(h.createAgent))
	r.HandleFunc("GET /calendar", h.calendar)
	r.HandleFunc("GET /meetings", h.meetings)
	r.HandleFunc("GET /prices", h.prices)
	r.HandleFunc("GET /signin", h.signInForm)
	r.HandleFunc("POST /signin", h.signIn)
	r.HandleFunc("POST /signout", h.signOut)

	r.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	return r
}

var funcs = template.FuncMap{
	"day": func(t time.Time) int { return t.Day() },
	"add": func(a, b int) int { return a + b },
}
