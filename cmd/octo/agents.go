package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/client"
	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/tui"
	"github.com/JaimeStill/octo/pkg/logging"
	"github.com/JaimeStill/octo/pkg/pagination"
)

// Environment variables read when the matching flag is not set.
const (
	EnvServer = "OCTO_SERVER"
	EnvToken  = "OCTO_TOKEN"
)

const (
	defaultServer  = "http://localhost:8080/api"
	requestTimeout = 10 * time.Second
)

type remoteFlags struct {
	server string
	token  string
}

func (f *remoteFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.server, "server", "", "API root (default $"+EnvServer+" or "+defaultServer+")")
	cmd.PersistentFlags().StringVar(&f.token, "token", "", "session token (default $"+EnvToken+")")
}

func (f *remoteFlags) client() (*client.Client, error) {
	server := firstNonEmpty(f.server, os.Getenv(EnvServer), defaultServer)
	token := firstNonEmpty(f.token, os.Getenv(EnvToken))
	if token == "" {
		return nil, fmt.Errorf("a session token is required: use --token or $%s", EnvToken)
	}

	return client.New(client.Config{
		BaseURL: server,
		Token:   token,
		Logger:  logging.Discard(),
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newAgentsCmd() *cobra.Command {
	var (
		remote   remoteFlags
		location string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Browse and create agents in the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := remote.client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			info, err := c.Session(ctx)
			if err != nil {
				if errors.Is(err, agents.ErrUnauthorized) {
					return fmt.Errorf("the token was rejected; sign in again")
				}
				return err
			}

			return tui.Run(tui.Config{
				Fetcher:  c,
				Creator:  c,
				Owner:    info.UserID,
				Plan:     info.Plan,
				PageSize: pageSize,
				Location: location,
				Timeout:  requestTimeout,
			}, cmd.OutOrStdout())
		},
	}

	remote.register(cmd)
	cmd.Flags().StringVar(&location, "query", "", `initial filter, e.g. "search=math&page=2"`)
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "agents per page (0 uses the server default)")

	cmd.AddCommand(newAgentsListCmd(&remote))
	return cmd
}

func newAgentsListCmd(remote *remoteFlags) *cobra.Command {
	var (
		search string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := remote.client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			result, err := c.List(ctx, agents.ListQuery{Search: search, Page: page})
			if err != nil {
				return err
			}
			return printAgents(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func printAgents(out io.Writer, result *pagination.PageResult[agents.Agent]) error {
	if len(result.Items) == 0 {
		fmt.Fprintln(out, dashboard.EmptyTitle)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, a := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Name, a.CreatedAt.Local().Format(time.DateTime))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nPage %d of %d (%d agents)\n", result.Page, result.TotalPages, result.Total)
	return nil
}
