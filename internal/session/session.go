// Package session resolves request tokens to the signed-in user and plan.
// Sessions are issued elsewhere; this package only reads them.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token for browser requests.
const CookieName = "octo_session"

// ErrNoSession is returned when a token does not resolve to a session.
var ErrNoSession = errors.New("no session")

// Plan is the subscription tier of a user.
type Plan string

const (
	PlanFree         Plan = "free"
	PlanPersonal     Plan = "personal"
	PlanBusiness     Plan = "business"
	PlanProfessional Plan = "professional"
)

// Validate checks that p is a known plan.
func (p Plan) Validate() error {
	switch p {
	case PlanFree, PlanPersonal, PlanBusiness, PlanProfessional:
		return nil
	default:
		return fmt.Errorf("unknown plan %q", p)
	}
}

// Session is the authenticated principal of a request.
type Session struct {
	UserID uuid.UUID
	Plan   Plan
	Token  string
}

// Lookup resolves a token to a session.
type Lookup interface {
	Lookup(ctx context.Context, token string) (*Session, error)
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Middleware resolves the request token and stores the session in the request context.
// Requests without a resolvable session continue anonymously.
func Middleware(lookup Lookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, err := lookup.Lookup(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrNoSession) {
					logger.Error("session lookup failed", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
