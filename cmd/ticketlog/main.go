// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/bartekus/ticketlog/cmd/ticketlog/commands"
	"github.com/bartekus/ticketlog/cmd/ticketlog/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
