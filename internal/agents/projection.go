package agents

import (
	"github.com/JaimeStill/octo/pkg/query"
	"github.com/JaimeStill/octo/pkg/repository"
)

var projection = query.
	NewProjectionMap("", "agents", "a").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("name", "Name").
	Project("instructions", "Instructions").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	var created repository.Time
	if err := s.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Instructions, &created); err != nil {
		return a, err
	}
	a.CreatedAt = created.Time
	return a, nil
}
