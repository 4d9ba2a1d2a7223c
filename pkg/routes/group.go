// Package routes describes HTTP route groups and registers them with a mux
// and an OpenAPI document in one pass.
package routes

import (
	"net/http"

	"github.com/JaimeStill/octo/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec documents every route of the group, and its children, under basePath.
// Operations without tags inherit the group tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g Group) addToSpec(parent string, spec *openapi.Spec) {
	prefix := parent + g.Prefix

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}
		spec.AddOperation(prefix+route.Pattern, route.Method, op)
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, spec)
	}
}

// Register mounts each group on mux relative to the module root and documents it
// in spec under basePath. A nil spec skips documentation.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}

func registerGroup(mux *http.ServeMux, parent string, group Group) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		pattern := prefix + route.Pattern
		if pattern == "" {
			pattern = "/"
		}
		mux.HandleFunc(route.Method+" "+pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
