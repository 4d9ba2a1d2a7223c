package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/octo/internal/agents"
)

// sampleAgents are cycled through when seeding; names repeat with a suffix.
var sampleAgents = []agents.CreateCommand{
	{Name: "Math Tutor", Instructions: "Explain algebra and calculus step by step."},
	{Name: "Code Helper", Instructions: "Review Go code and suggest idiomatic improvements."},
	{Name: "Math Grader", Instructions: "Grade math homework and point out mistakes."},
	{Name: "Travel Planner", Instructions: "Plan itineraries within a given budget."},
	{Name: "Recipe Coach", Instructions: "Suggest recipes from the ingredients at hand."},
	{Name: "Writing Editor", Instructions: "Tighten prose without changing its meaning."},
}

// seedAgents inserts count agents for owner, oldest first, and returns them.
func seedAgents(ctx context.Context, repo agents.Repository, owner uuid.UUID, count int, now time.Time) ([]agents.Agent, error) {
	created := make([]agents.Agent, 0, count)
	start := now.Add(-time.Duration(count) * time.Minute)

	for i := range count {
		sample := sampleAgents[i%len(sampleAgents)]
		name := sample.Name
		if round := i / len(sampleAgents); round > 0 {
			name = fmt.Sprintf("%s %d", name, round+1)
		}

		a := agents.Agent{
			ID:           uuid.New(),
			OwnerID:      owner,
			Name:         name,
			Instructions: sample.Instructions,
			CreatedAt:    start.Add(time.Duration(i) * time.Minute).UTC().Truncate(time.Microsecond),
		}
		if err := repo.Insert(ctx, a, 0); err != nil {
			return created, fmt.Errorf("insert %q: %w", name, err)
		}
		created = append(created, a)
	}
	return created, nil
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data",
	}
	cmd.AddCommand(newSeedAgentsCmd())
	return cmd
}

func newSeedAgentsCmd() *cobra.Command {
	var (
		owner string
		count int
	)

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Insert sample agents for an owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := uuid.Parse(owner)
			if err != nil {
				return fmt.Errorf("invalid --owner: %w", err)
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := agents.NewRepository(db.Connection(), db.Dialect())
			created, err := seedAgents(cmd.Context(), repo, ownerID, count, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d agents for %s\n", len(created), ownerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner user id (required)")
	cmd.Flags().IntVar(&count, "count", len(sampleAgents), "number of agents to insert")
	cmd.MarkFlagRequired("owner")
	return cmd
}
