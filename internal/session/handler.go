package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/pkg/handlers"
	"github.com/JaimeStill/octo/pkg/openapi"
	"github.com/JaimeStill/octo/pkg/routes"
)

// Info is the public view of a session.
type Info struct {
	UserID uuid.UUID `json:"user_id"`
	Plan   Plan      `json:"plan"`
}

var errUnauthorized = errors.New("UNAUTHORIZED")

// Handler exposes the caller's session.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/session",
		Tags:        []string{"Session"},
		Description: "The signed-in user",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Current, OpenAPI: currentSpec},
		},
		Schemas: map[string]*openapi.Schema{
			"Session": {
				Type:     "object",
				Required: []string{"user_id", "plan"},
				Properties: map[string]*openapi.Schema{
					"user_id": {Type: "string", Format: "uuid"},
					"plan": {
						Type: "string",
						Enum: []string{string(PlanFree), string(PlanPersonal), string(PlanBusiness), string(PlanProfessional)},
					},
				},
			},
		},
	}
}

// Current handles GET /session.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	s := FromContext(r.Context())
	if s == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errUnauthorized)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, Info{UserID: s.UserID, Plan: s.Plan})
}

var currentSpec = &openapi.Operation{
	Summary:     "Current session",
	Description: "Returns the user id and plan of the caller",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Session", "Session"),
		401: openapi.ResponseRef("Unauthorized"),
	},
}
