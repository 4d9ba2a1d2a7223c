package agents

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/handlers"
	"github.com/JaimeStill/octo/pkg/pagination"
	"github.com/JaimeStill/octo/pkg/routes"
)

// Handler provides the JSON endpoints for agents.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new agents HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group configuration for agent endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/agents",
		Tags:        []string{"Agents"},
		Description: "Agents owned by the signed-in user",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
		},
		Schemas: Spec.Schemas(),
	}
}

// List handles GET /agents to retrieve one page of the caller's agents.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	page, err := pagination.PageRequestFromQuery(values)
	if err != nil {
		h.respondError(w, NewValidationError(pageField(err), err.Error()))
		return
	}

	q := ListQuery{
		Search:   values.Get(pagination.ParamSearch),
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	result, err := h.sys.List(r.Context(), session.FromContext(r.Context()), q)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find handles GET /agents/{id} to retrieve a single agent.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, NewValidationError("id", "invalid agent id"))
		return
	}

	result, err := h.sys.Find(r.Context(), session.FromContext(r.Context()), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /agents to create a new agent.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), session.FromContext(r.Context()), cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	handlers.RespondFields(w, h.logger, MapHTTPStatus(err), err, FieldErrors(err))
}

func pageField(err error) string {
	if errors.Is(err, pagination.ErrInvalidPageSize) {
		return "page_size"
	}
	return "page"
}
