package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/octo/internal/config"
	"github.com/JaimeStill/octo/pkg/database"
	"github.com/JaimeStill/octo/pkg/logging"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "octo",
		Short:         "Octo agents dashboard",
		Long:          "Octo manages agents: run database migrations, seed sample data, and browse agents from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", config.BaseConfigFile, "config file")

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newAgentsCmd())

	return cmd
}

// openDatabase loads the configuration and opens the configured database.
// The caller closes the returned system.
func openDatabase() (*config.Config, database.System, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.Logging.Output == logging.OutputStdout {
		cfg.Logging.Output = logging.OutputStderr
	}

	db, err := database.New(&cfg.Database, logging.New(&cfg.Logging))
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
