package openapi_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/octo/pkg/openapi"
)

var testEnv = &openapi.ConfigEnv{
	Title:       "TEST_OPENAPI_TITLE",
	Description: "TEST_OPENAPI_DESCRIPTION",
	Servers:     "TEST_OPENAPI_SERVERS",
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	var cfg openapi.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Title != "Octo API" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("Description is empty")
	}
	if len(cfg.Servers) != 0 {
		t.Errorf("Servers = %v, want none", cfg.Servers)
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Agents")
	t.Setenv("TEST_OPENAPI_SERVERS", " https://api.example.com , ,http://localhost:8080")

	cfg := openapi.Config{Servers: []string{"https://old.example.com"}}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Title != "Agents" {
		t.Errorf("Title = %q, want Agents", cfg.Title)
	}
	want := []string{"https://api.example.com", "http://localhost:8080"}
	if !slices.Equal(cfg.Servers, want) {
		t.Errorf("Servers = %v, want %v", cfg.Servers, want)
	}
}

func TestConfig_Finalize_RejectsRelativeServer(t *testing.T) {
	for _, s := range []string{"/api", "ftp://files.example.com", "https://"} {
		cfg := openapi.Config{Servers: []string{s}}
		if err := cfg.Finalize(nil); err == nil {
			t.Errorf("Finalize() with server %q = nil, want error", s)
		}
	}
}

func TestConfig_Merge(t *testing.T) {
	base := openapi.Config{Title: "Octo API", Description: "base", Servers: []string{"https://a.example.com"}}

	base.Merge(&openapi.Config{Description: "overlay"})
	if base.Title != "Octo API" || base.Description != "overlay" || len(base.Servers) != 1 {
		t.Errorf("after partial merge = %+v", base)
	}

	base.Merge(&openapi.Config{Servers: []string{"https://b.example.com", "https://c.example.com"}})
	if !slices.Equal(base.Servers, []string{"https://b.example.com", "https://c.example.com"}) {
		t.Errorf("Servers = %v", base.Servers)
	}
}

func TestConfig_Apply(t *testing.T) {
	cfg := openapi.Config{Title: "Octo API", Description: "Agents.", Servers: []string{"https://api.example.com"}}
	spec := openapi.NewSpec(cfg.Title, "1.0.0")
	spec.AddServer("http://localhost:8080")

	cfg.Apply(spec)

	if spec.Info.Description != "Agents." {
		t.Errorf("Description = %q", spec.Info.Description)
	}
	if len(spec.Servers) != 2 || spec.Servers[1].URL != "https://api.example.com" {
		t.Errorf("Servers = %+v", spec.Servers)
	}
}
