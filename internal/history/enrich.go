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
	"iter"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// DefaultStoryPointsField is the custom field holding story points on the
// Jira instance this tool was written against. Other instances use other ids.
const DefaultStoryPointsField = "customfield_10063"

// TicketSummary is the enriched view of one ticket. Empty strings stand for
// values the tracker did not provide.
type TicketSummary struct {
	Key         string
	Summary     string
	StoryPoints string
}

// Line formats the summary as "KEY - summary [SP: points]".
func (s TicketSummary) Line() string {
	return fmt.Sprintf("%s - %s [SP: %s]", s.Key, s.Summary, s.StoryPoints)
}

// EnrichmentError records why a single ticket could not be enriched.
type EnrichmentError struct {
	Key string
	Err error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrich %s: %v", e.Key, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// Result is the outcome of enriching one ticket. Exactly one of Summary and
// Err is meaningful.
type Result struct {
	Key     string
	Summary TicketSummary
	Err     error
}

// OK reports whether the ticket was enriched.
func (r Result) OK() bool { return r.Err == nil }

// Enricher looks up each ticket in the issue tracker. Failures stay attached
// to their Result and never abort the batch.
type Enricher struct {
	issues           IssueSource
	storyPointsField string
	concurrency      int
	log              *slog.Logger
}

// NewEnricher returns an Enricher. An empty storyPointsField selects
// DefaultStoryPointsField; concurrency below 1 means sequential.
func NewEnricher(issues IssueSource, storyPointsField string, concurrency int, log *slog.Logger) *Enricher {
	if storyPointsField == "" {
		storyPointsField = DefaultStoryPointsField
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		issues:           issues,
		storyPointsField: storyPointsField,
		concurrency:      concurrency,
		log:              log,
	}
}

// Enrich fetches every key once. Results come back in key order regardless
// of how many requests ran in parallel.
func (e *Enricher) Enrich(ctx context.Context, keys iter.Seq[string]) []Result {
	all := slices.Collect(keys)
	results := make([]Result, len(all))

	if e.concurrency == 1 {
		for i, key := range all {
			results[i] = e.enrichOne(ctx, key)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, key := range all {
		g.Go(func() error {
			results[i] = e.enrichOne(ctx, key)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (e *Enricher) enrichOne(ctx context.Context, key string) Result {
	issue, err := e.issues.Issue(ctx, key)
	if err != nil {
		err = &EnrichmentError{Key: key, Err: err}
		e.log.Debug("skipping ticket", "key", key, "err", err)
		return Result{Key: key, Err: err}
	}

	summary, _ := issue.Summary()
	points, _ := issue.Field(e.storyPointsField)
	return Result{
		Key: key,
		Summary: TicketSummary{
			Key:         key,
			Summary:     summary,
			StoryPoints: points,
		},
	}
}

// Successful drops failed results, keeping order.
func Successful(results []Result) []TicketSummary {
	out := make([]TicketSummary, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, r.Summary)
		}
	}
	return out
}
