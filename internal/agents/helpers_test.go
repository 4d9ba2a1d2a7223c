package agents_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/migrations"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/database"
	"github.com/JaimeStill/octo/pkg/logging"
	"github.com/JaimeStill/octo/pkg/pagination"
	"github.com/JaimeStill/octo/pkg/query"
)

var (
	owner = &session.Session{
		UserID: uuid.MustParse("11111111-1111-4111-8111-111111111111"),
		Plan:   session.PlanBusiness,
		Token:  "owner",
	}
	other = &session.Session{
		UserID: uuid.MustParse("22222222-2222-4222-8222-222222222222"),
		Plan:   session.PlanFree,
		Token:  "other",
	}
)

func paginationConfig(t *testing.T) pagination.Config {
	t.Helper()
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("pagination Finalize() error = %v", err)
	}
	return cfg
}

func newRepository(t *testing.T) agents.Repository {
	t.Helper()

	cfg := &database.Config{
		Driver: query.SQLite,
		Path:   filepath.Join(t.TempDir(), "agents.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("database Finalize() error = %v", err)
	}

	db, err := database.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Up(db); err != nil {
		t.Fatalf("migrations.Up() error = %v", err)
	}

	return agents.NewRepository(db.Connection(), db.Dialect())
}

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newSystem(t *testing.T, cfg agents.Config) agents.System {
	t.Helper()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("agents Finalize() error = %v", err)
	}
	return agents.New(newRepository(t), logging.Discard(), paginationConfig(t), cfg, agents.WithClock(stepClock()))
}
