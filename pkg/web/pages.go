// Package web provides infrastructure for serving web pages with Go templates.
// It supports pre-parsed templates for zero per-request overhead and
// declarative page definitions for simplified route generation.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// PageDef defines a page with its route, template file, and title.
type PageDef struct {
	Route    string
	Template string
	Title    string
}

// PageData contains the data passed to page templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type PageData struct {
	Title    string
	BasePath string
	Nav      string
	User     any
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
// Templates are parsed once at startup, avoiding per-request overhead.
// The basePath is automatically included in PageData for all handlers.
type TemplateSet struct {
	pages    map[string]*template.Template
	basePath string
}

// NewTemplateSet creates a TemplateSet by parsing layout templates and cloning them
// for each page. funcs is made available to layouts and pages and may be nil.
// Parsing happens once, so a broken template fails at startup.
func NewTemplateSet(layoutFS, pageFS fs.FS, layoutGlob, pageSubdir, basePath string, funcs template.FuncMap, pages []PageDef) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	pageSub, err := fs.Sub(pageFS, pageSubdir)
	if err != nil {
		return nil, err
	}

	pageTemplates := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p.Template, err)
		}
		_, err = t.ParseFS(pageSub, p.Template)
		if err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", p.Template, err)
		}
		pageTemplates[p.Template] = t
	}

	return &TemplateSet{
		pages:    pageTemplates,
		basePath: basePath,
	}, nil
}

// BasePath returns the prefix used for URL generation.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// ErrorHandler returns an HTTP handler that renders an error template with the
// given status code.
func (ts *TemplateSet) ErrorHandler(layout, template string, status int, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{Title: title}
		if err := ts.Render(w, status, layout, template, data); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// PageHandler returns an HTTP handler that renders the given page.
func (ts *TemplateSet) PageHandler(layout string, page PageDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{Title: page.Title}
		if err := ts.Render(w, http.StatusOK, layout, page.Template, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// Render executes the named layout template with the given page data and writes
// it with status. Output is buffered so a failing template writes nothing.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layoutName, pagePath string, data PageData) error {
	t, ok := ts.pages[pagePath]
	if !ok {
		return fmt.Errorf("template not found: %s", pagePath)
	}

	data.BasePath = ts.basePath

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
