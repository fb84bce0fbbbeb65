// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package history

import (
	"context"
	"fmt"
	"log/slog"
)

// Report is everything printed for one file.
type Report struct {
	ProjectID   string
	FilePath    string
	CommitCount int
	DateRange   DateRange
	Tickets     []TicketSummary
	// Skipped counts tickets whose enrichment failed.
	Skipped int
}

// TicketLines formats the tickets, dropping repeated lines.
func (r *Report) TicketLines() []string {
	seen := make(map[string]struct{}, len(r.Tickets))
	lines := make([]string, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		line := t.Line()
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

// Reporter runs fetch, range, extraction and enrichment in one forward pass.
type Reporter struct {
	commits  CommitSource
	enricher *Enricher
	log      *slog.Logger
}

// NewReporter wires a Reporter.
func NewReporter(commits CommitSource, enricher *Enricher, log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{commits: commits, enricher: enricher, log: log}
}

// Run builds the report for filePath in projectID. Fetch failures and an
// empty history are returned as errors; ticket failures only shrink the
// ticket list.
func (r *Reporter) Run(ctx context.Context, projectID, filePath string) (*Report, error) {
	commits, err := r.commits.FetchCommits(ctx, projectID, filePath)
	if err != nil {
		return nil, err
	}

	dates, err := ComputeDateRange(commits)
	if err != nil {
		return nil, fmt.Errorf("%s in project %s: %w", filePath, projectID, err)
	}

	results := r.enricher.Enrich(ctx, Tickets(commits))
	tickets := Successful(results)
	if skipped := len(results) - len(tickets); skipped > 0 {
		r.log.Debug("tickets skipped", "skipped", skipped, "total", len(results))
	}

	return &Report{
		ProjectID:   projectID,
		FilePath:    filePath,
		CommitCount: len(commits),
		DateRange:   dates,
		Tickets:     tickets,
		Skipped:     len(results) - len(tickets),
	}, nil
}
