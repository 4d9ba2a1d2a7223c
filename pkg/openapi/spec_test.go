package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/octo/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Octo API", "0.1.0")
	spec.SetDescription("desc")
	spec.AddServer("")
	spec.AddServer("http://localhost:8080")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q", spec.OpenAPI)
	}
	if spec.Info.Description != "desc" {
		t.Errorf("Description = %q", spec.Info.Description)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("Servers = %d, want 1", len(spec.Servers))
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "Forbidden", "NotFound"} {
		if _, ok := spec.Components.Responses[name]; !ok {
			t.Errorf("missing response %s", name)
		}
	}
}

func TestMarshalAndServe(t *testing.T) {
	spec := openapi.NewSpec("Octo API", "0.1.0")
	spec.AddOperation("/api/agents", http.MethodGet, &openapi.Operation{
		Summary: "List agents",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("ok", "AgentPageResult"),
		},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("served document is not JSON: %v", err)
	}

	paths := doc["paths"].(map[string]any)
	get := paths["/api/agents"].(map[string]any)["get"].(map[string]any)
	responses := get["responses"].(map[string]any)
	if _, ok := responses["200"]; !ok {
		t.Errorf("responses = %v, want key 200", responses)
	}
}

func TestAddOperation_IgnoresUnsupportedMethods(t *testing.T) {
	spec := openapi.NewSpec("Octo API", "0.1.0")
	spec.AddOperation("/api/agents/{id}", http.MethodDelete, &openapi.Operation{Summary: "Delete"})

	if _, ok := spec.Paths["/api/agents/{id}"]; ok {
		t.Error("DELETE operation created a path item")
	}

	spec.AddOperation("/api/agents", http.MethodPost, &openapi.Operation{Summary: "Create"})
	if item := spec.Paths["/api/agents"]; item == nil || item.Post == nil || item.Get != nil {
		t.Errorf("path item = %+v, want POST only", item)
	}
}
