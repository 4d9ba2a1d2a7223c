package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/octo/internal/migrations"
	"github.com/JaimeStill/octo/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, db, err := openDatabase()
				if err != nil {
					return err
				}
				defer db.Close()

				if err := migrations.Up(db); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				return printVersion(cmd, db)
			},
		},
		newMigrateDownCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, db, err := openDatabase()
				if err != nil {
					return err
				}
				defer db.Close()
				return printVersion(cmd, db)
			},
		},
	)

	return cmd
}

func newMigrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Down(db, steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			return printVersion(cmd, db)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert (0 reverts all)")
	return cmd
}

func printVersion(cmd *cobra.Command, db database.System) error {
	version, dirty, err := migrations.Version(db)
	if err != nil {
		return fmt.Errorf("migration version: %w", err)
	}

	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, state)
	return nil
}
