package openapi

import (
	"encoding/json"
	"net/http"
)

// NewSpec creates an empty OpenAPI 3.1 document.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// SetDescription sets the API description.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation registers op under path for GET or POST. Other methods are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	var slot **Operation
	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
	}

	switch method {
	case http.MethodGet:
		slot = &item.Get
	case http.MethodPost:
		slot = &item.Post
	default:
		return
	}

	*slot = op
	s.Paths[path] = item
}

// NewComponents returns the shared schemas and responses every API document carries.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
					"fields": {
						Type:                 "object",
						Description:          "Per-field validation messages",
						AdditionalProperties: &Schema{Type: "string"},
					},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   errorResponse("Invalid request"),
			"Unauthorized": errorResponse("Missing or unknown session"),
			"Forbidden":    errorResponse("Plan does not allow the operation"),
			"NotFound":     errorResponse("Resource not found"),
		},
	}
}

func errorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}

// AddSchemas merges schemas into the components.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	if c.Schemas == nil {
		c.Schemas = make(map[string]*Schema, len(schemas))
	}
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the components.
func (c *Components) AddResponses(responses map[string]*Response) {
	if c.Responses == nil {
		c.Responses = make(map[string]*Response, len(responses))
	}
	for name, resp := range responses {
		c.Responses[name] = resp
	}
}

// MarshalJSON renders the document with two-space indentation.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that writes a pre-rendered document.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	}
}
