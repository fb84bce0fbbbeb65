// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bartekus/ticketlog/cmd/ticketlog/internal/clierr"
	"github.com/bartekus/ticketlog/internal/config"
)

// NewRootCmd constructs the ticketlog root command. Running it without a
// subcommand produces the history report.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("TICKETLOG_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	v := config.New()

	cmd := &cobra.Command{
		Use:   "ticketlog --project <id> --file-path <path>",
		Short: "Report the commit history of a file and the tickets behind it",
		Long: `Ticketlog fetches the commits that touched one file in a GitLab project,
prints how many there are and the dates they span, and lists every Jira ticket
referenced in a commit title together with its summary and story points.

Connection settings come from flags, TICKETLOG_* environment variables or
.ticketlog.yaml in the working or home directory.`,
		Example: `  ticketlog -p 42 -f src/Service/Invoice.php
  TICKETLOG_CONCURRENCY=4 ticketlog --project group/app --file-path go.mod --output table`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return clierr.Wrap(clierr.ExitGeneral, "bind flags", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, v)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Wrap(clierr.ExitUsage, "invalid flags", err)
	})

	// Flags in alphabetical order for deterministic help output
	pf := cmd.PersistentFlags()
	pf.String("color", config.DefaultColor, "Colorize output: auto, always or never")
	pf.Int("concurrency", config.DefaultConcurrency, "Number of ticket lookups running at once")
	pf.String("config", "", "Config file (default .ticketlog.yaml in . or $HOME)")
	pf.String("output", config.DefaultOutput, "Ticket output: text or table")
	pf.BoolP("verbose", "v", false, "Log requests and skipped tickets to stderr")

	cmd.Flags().StringP("file-path", "f", "", "Path of the file whose history is queried")
	cmd.Flags().StringP("project", "p", "", "GitLab project id or path")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of ticketlog",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ticketlog version %s\n", version)
		},
	})
	cmd.AddCommand(NewConfigCommand(v))

	return cmd
}

// newLogger writes to the command's stderr; --verbose lowers the level to debug.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "load config", err)
	}
	return cfg, nil
}
