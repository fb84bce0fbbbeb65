// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bartekus/ticketlog/cmd/ticketlog/internal/clierr"
	"github.com/bartekus/ticketlog/internal/gitlab"
	"github.com/bartekus/ticketlog/internal/history"
	"github.com/bartekus/ticketlog/internal/jira"
)

// runHistory fetches, enriches and prints the report for one file.
func runHistory(cmd *cobra.Command, v *viper.Viper) error {
	projectID, err := cmd.Flags().GetString("project")
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "get project flag", err)
	}
	filePath, err := cmd.Flags().GetString("file-path")
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "get file-path flag", err)
	}
	if projectID == "" || filePath == "" {
		return clierr.New(clierr.ExitUsage, "both --project (-p) and --file-path (-f) are required")
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	commits := gitlab.NewClient(cfg.GitLab.URL, cfg.GitLab.Token, cfg.HTTP.Timeout, log)
	issues := jira.NewClient(cfg.Jira.URL, cfg.Jira.User, cfg.Jira.Password, cfg.HTTP.Timeout, log)
	enricher := history.NewEnricher(issues, cfg.Jira.StoryPointsField, cfg.Concurrency, log)

	report, err := history.NewReporter(commits, enricher, log).Run(cmd.Context(), projectID, filePath)
	if err != nil {
		var fetchErr *gitlab.FetchError
		switch {
		case errors.As(err, &fetchErr):
			return clierr.Wrap(clierr.ExitFetch, "fetch commit history", err)
		case errors.Is(err, history.ErrEmptyHistory):
			return clierr.Wrap(clierr.ExitEmptyHistory, "empty history", err)
		default:
			return err
		}
	}

	printer := history.NewPrinter(cmd.OutOrStdout(), history.Format(cfg.Output), colorize(cfg.Color))
	if err := printer.Print(report); err != nil {
		return clierr.Wrap(clierr.ExitGeneral, "write report", err)
	}
	return nil
}

// colorize resolves the color setting; auto defers to fatih/color's terminal detection.
func colorize(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}
