// Package agents stores and lists the agents owned by dashboard users.
// Every operation is scoped to the session passed by the caller.
package agents

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits enforced on creation.
const (
	MaxNameLength         = 100
	MaxInstructionsLength = 4000
)

// Agent is a named assistant with instructions, owned by one user.
type Agent struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListQuery selects one page of an owner's agents.
// A zero PageSize means the configured default.
type ListQuery struct {
	Search   string `json:"search"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// CreateCommand contains the data required to create a new agent.
type CreateCommand struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// Normalize trims surrounding whitespace from both fields.
func (c CreateCommand) Normalize() CreateCommand {
	return CreateCommand{
		Name:         strings.TrimSpace(c.Name),
		Instructions: strings.TrimSpace(c.Instructions),
	}
}

// Validate reports every invalid field of the normalized command.
func (c CreateCommand) Validate() error {
	n := c.Normalize()
	fields := make(map[string]string)

	switch {
	case n.Name == "":
		fields["name"] = "Name is required"
	case utf8.RuneCountInString(n.Name) > MaxNameLength:
		fields["name"] = "Name must be at most 100 characters"
	}

	switch {
	case n.Instructions == "":
		fields["instructions"] = "Instructions are required"
	case utf8.RuneCountInString(n.Instructions) > MaxInstructionsLength:
		fields["instructions"] = "Instructions must be at most 4000 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
