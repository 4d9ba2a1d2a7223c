// Package scalar serves the interactive API reference using Scalar UI.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/octo/pkg/module"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

// Handler serves the reference page for the OpenAPI document at specURL.
func Handler(title, specURL string) (http.HandlerFunc, error) {
	var buf bytes.Buffer
	err := index.Execute(&buf, struct{ Title, SpecURL string }{title, specURL})
	if err != nil {
		return nil, err
	}
	page := buf.Bytes()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	}, nil
}

// NewModule mounts the reference page at prefix.
func NewModule(prefix, title, specURL string) (*module.Module, error) {
	h, err := Handler(title, specURL)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h)
	return module.New(prefix, mux), nil
}
