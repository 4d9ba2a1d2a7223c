package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/logging"
	"github.com/JaimeStill/octo/pkg/routes"
)

func TestHandler_Current(t *testing.T) {
	logger := logging.Discard()
	mux := http.NewServeMux()
	routes.Register(mux, "", nil, session.NewHandler(logger).Routes())
	h := session.Middleware(session.NewStatic(alice), logger)(mux)

	t.Run("signed in", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/session", nil)
		r.Header.Set("Authorization", "Bearer "+alice.Token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var info session.Info
		if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
			t.Fatal(err)
		}
		if info.UserID != alice.UserID || info.Plan != alice.Plan {
			t.Errorf("Info = %+v", info)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/session", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
