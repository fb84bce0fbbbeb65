// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package history

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Format selects how ticket lines are rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// SuccessMarker closes every complete report.
const SuccessMarker = "[OK] FIN!"

// Printer writes reports for humans. Output is not meant to be parsed.
type Printer struct {
	w       io.Writer
	format  Format
	success *color.Color
}

// NewPrinter returns a Printer. colorize toggles ANSI styling of the success
// marker regardless of what the terminal supports.
func NewPrinter(w io.Writer, format Format, colorize bool) *Printer {
	success := color.New(color.FgBlack, color.BgGreen)
	if colorize {
		success.EnableColor()
	} else {
		success.DisableColor()
	}
	if format == "" {
		format = FormatText
	}
	return &Printer{w: w, format: format, success: success}
}

// Print writes the commit count, the date range, the ticket lines and the
// success marker, in that order.
func (p *Printer) Print(r *Report) error {
	if _, err := fmt.Fprintf(p.w, "%d\n%s\n\n\n", r.CommitCount, r.DateRange); err != nil {
		return err
	}

	switch p.format {
	case FormatText:
		for _, line := range r.TicketLines() {
			if _, err := fmt.Fprintln(p.w, line); err != nil {
				return err
			}
		}
	case FormatTable:
		if err := p.printTable(r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", p.format)
	}

	_, err := fmt.Fprintf(p.w, "\n%s\n\n", p.success.Sprint(SuccessMarker))
	return err
}

func (p *Printer) printTable(r *Report) error {
	if len(r.Tickets) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(p.w)
	table.Header("Key", "Summary", "SP")

	seen := make(map[TicketSummary]struct{}, len(r.Tickets))
	data := make([][]string, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		data = append(data, []string{t.Key, t.Summary, t.StoryPoints})
	}
	if r.Skipped > 0 {
		table.Footer("", "skipped", strconv.Itoa(r.Skipped))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
