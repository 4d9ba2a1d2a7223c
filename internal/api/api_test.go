package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/api"
	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/internal/infrastructure"
	"github.com/JaimeStill/octo/pkg/module"
	"github.com/JaimeStill/octo/pkg/pagination"
)

const (
	ownerToken = "owner-token"
	freeToken  = "free-token"
)

const testConfig = `
[database]
driver = "sqlite"
auto_migrate = true

[cache]
enabled = true

[agents]
free_tier_limit = 1

[[session.tokens]]
token = "owner-token"
user_id = "11111111-1111-4111-8111-111111111111"
plan = "business"

[[session.tokens]]
token = "free-token"
user_id = "22222222-2222-4222-8222-222222222222"
plan = "free"
`

func newServer(t *testing.T) (*httptest.Server, *api.Domain) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "octo.db"))
	t.Setenv("LOGGING_LEVEL", "error")

	path := filepath.Join(dir, config.BaseConfigFile)
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()) })

	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(runtime)

	m, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, domain
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	return v
}

func TestModule_CreateThenList(t *testing.T) {
	srv, domain := newServer(t)

	if domain.Invalidator == nil {
		t.Fatal("cache enabled but Invalidator is nil")
	}

	// Prime the cache with an empty page.
	resp := do(t, srv, http.MethodGet, "/api/agents?search=math", ownerToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if page := decode[pagination.PageResult[agents.Agent]](t, resp); page.Total != 0 || page.TotalPages != 0 {
		t.Fatalf("empty page = %+v", page)
	}

	for _, name := range []string{"Math Tutor", "Code Helper", "Math Grader"} {
		body := `{"name":"` + name + `","instructions":"help"}`
		resp := do(t, srv, http.MethodPost, "/api/agents", ownerToken, body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %q status = %d", name, resp.StatusCode)
		}
	}

	resp = do(t, srv, http.MethodGet, "/api/agents?search=math&page_size=2", ownerToken, "")
	page := decode[pagination.PageResult[agents.Agent]](t, resp)
	if page.Total != 2 || page.TotalPages != 1 || len(page.Items) != 2 {
		t.Errorf("search page = total %d, pages %d, items %d; want 2, 1, 2",
			page.Total, page.TotalPages, len(page.Items))
	}

	resp = do(t, srv, http.MethodGet, "/api/agents?search=math", ownerToken, "")
	if page := decode[pagination.PageResult[agents.Agent]](t, resp); page.Total != 2 {
		t.Errorf("cached search total = %d after create, want 2", page.Total)
	}
}

func TestModule_Errors(t *testing.T) {
	srv, _ := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"anonymous list", http.MethodGet, "/api/agents", "", "", http.StatusUnauthorized},
		{"unknown token", http.MethodGet, "/api/agents", "nope", "", http.StatusUnauthorized},
		{"invalid page", http.MethodGet, "/api/agents?page=0", ownerToken, "", http.StatusBadRequest},
		{"blank name", http.MethodPost, "/api/agents", ownerToken, `{"name":" ","instructions":"x"}`, http.StatusBadRequest},
		{"unknown agent", http.MethodGet, "/api/agents/33333333-3333-4333-8333-333333333333", ownerToken, "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.token, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestModule_FreeTierLimit(t *testing.T) {
	srv, _ := newServer(t)

	body := `{"name":"First","instructions":"x"}`
	if resp := do(t, srv, http.MethodPost, "/api/agents", freeToken, body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create status = %d", resp.StatusCode)
	}

	body = `{"name":"Second","instructions":"x"}`
	if resp := do(t, srv, http.MethodPost, "/api/agents", freeToken, body); resp.StatusCode != http.StatusForbidden {
		t.Errorf("second create status = %d, want 403", resp.StatusCode)
	}
}

func TestModule_Session(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/session", freeToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	info := decode[map[string]string](t, resp)
	if info["plan"] != "free" || info["user_id"] != "22222222-2222-4222-8222-222222222222" {
		t.Errorf("session = %v", info)
	}
}

func TestModule_OpenAPI(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/openapi.json", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	doc := decode[struct {
		Paths map[string]any `json:"paths"`
	}](t, resp)
	for _, p := range []string{"/api/agents", "/api/agents/{id}", "/api/session"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("paths missing %s", p)
		}
	}
}
