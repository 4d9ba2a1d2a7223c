package agents

import "github.com/JaimeStill/octo/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all agent endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List agents",
		Description: "Returns one page of the caller's agents, newest first, optionally filtered by name",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("search", "string", "Case-insensitive substring of the agent name", false),
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of agents", "AgentPageResult"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get agent by ID",
		Description: "Retrieves a single agent owned by the caller",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create agent",
		Description: "Validates and stores a new agent for the caller",
		RequestBody: openapi.RequestBodyJSON("CreateAgentCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Agent created", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
}

// Schemas returns the component schemas referenced by the agent operations.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Agent": {
			Type:     "object",
			Required: []string{"id", "owner_id", "name", "instructions", "created_at"},
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"owner_id":     {Type: "string", Format: "uuid"},
				"name":         {Type: "string", Example: "Math Tutor"},
				"instructions": {Type: "string", Example: "Help with calculus homework."},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"CreateAgentCommand": {
			Type:     "object",
			Required: []string{"name", "instructions"},
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string", MaxLength: openapi.Int(MaxNameLength)},
				"instructions": {Type: "string", MaxLength: openapi.Int(MaxInstructionsLength)},
			},
		},
		"AgentPageResult": {
			Type:     "object",
			Required: []string{"items", "total", "page", "page_size", "total_pages"},
			Properties: map[string]*openapi.Schema{
				"items":       {Type: "array", Items: openapi.SchemaRef("Agent")},
				"total":       {Type: "integer", Minimum: openapi.Int(0)},
				"page":        {Type: "integer", Minimum: openapi.Int(1)},
				"page_size":   {Type: "integer", Minimum: openapi.Int(1)},
				"total_pages": {Type: "integer", Minimum: openapi.Int(0)},
			},
		},
	}
}
