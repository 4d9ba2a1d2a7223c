package main

import (
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/octo/internal/config"
)

func availablePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("find available port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestServer_Integration(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	port := availablePort(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", strconv.Itoa(port))
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "octo.db"))
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")
	t.Setenv("LOGGING_LEVEL", "error")

	cfg, err := config.Load(config.BaseConfigFile)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer srv.Shutdown(5 * time.Second)

	base := "http://127.0.0.1:" + strconv.Itoa(port)

	deadline := time.Now().Add(5 * time.Second)
	for {
		if status, _ := get(t, base+"/readyz"); status == http.StatusOK {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("server never became ready")
		}
		time.Sleep(10 * time.Millisecond)
	}

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/healthz", http.StatusOK, "OK"},
		{"/app", http.StatusOK, "Welcome to Octo"},
		{"/app/prices", http.StatusOK, "Choose Business"},
		{"/scalar", http.StatusOK, "/api/openapi.json"},
		{"/api/openapi.json", http.StatusOK, `"/api/agents"`},
		{"/api/agents", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/", http.StatusFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, base+tt.path)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}

	// Metrics are read last so the requests above are counted.
	status, body := get(t, base+"/metrics")
	if status != http.StatusOK || !strings.Contains(body, "octo_http_requests_total") {
		t.Errorf("metrics = %d, missing request counter", status)
	}
}
