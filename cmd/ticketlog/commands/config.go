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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/ticketlog/cmd/ticketlog/internal/clierr"
	"github.com/bartekus/ticketlog/internal/config"
)

// NewConfigCommand returns the `ticketlog config` command.
func NewConfigCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect ticketlog configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML with secrets masked",
		Long: `Print the configuration ticketlog would run with after merging flags,
environment and config file. Problems are listed after the YAML document and
make the command fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(v)
			if err != nil {
				return clierr.Wrap(clierr.ExitUsage, "config show", err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg.Redacted()); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if err := enc.Close(); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			if err := cfg.Validate(); err != nil {
				return clierr.Wrap(clierr.ExitUsage, "config show", err)
			}
			return nil
		},
	})

	return cmd
}
