// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history builds the commit-history report for a single file: commit
// count, date span and the tickets referenced by commit titles.
package history

import (
	"context"

	"github.com/bartekus/ticketlog/internal/gitlab"
	"github.com/bartekus/ticketlog/internal/jira"
)

// CommitSource provides the commit history of one file, newest first.
type CommitSource interface {
	FetchCommits(ctx context.Context, projectID, filePath string) ([]gitlab.Commit, error)
}

// IssueSource provides issue-tracker details for a ticket key.
type IssueSource interface {
	Issue(ctx context.Context, key string) (*jira.Issue, error)
}
