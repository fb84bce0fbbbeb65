package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bartekus/ticketlog/internal/gitlab"
	"github.com/bartekus/ticketlog/internal/jira"
)

// mockIssueSource is a testify mock for IssueSource.
type mockIssueSource struct {
	mock.Mock
}

var _ IssueSource = &mockIssueSource{}

func (m *mockIssueSource) Issue(ctx context.Context, key string) (*jira.Issue, error) {
	args := m.Called(ctx, key)
	issue, _ := args.Get(0).(*jira.Issue)
	return issue, args.Error(1)
}

// fakeCommitSource serves a fixed history without touching the network.
type fakeCommitSource struct {
	commits []gitlab.Commit
	err     error
}

func (f fakeCommitSource) FetchCommits(context.Context, string, string) ([]gitlab.Commit, error) {
	return f.commits, f.err
}

func commit(title, date string) gitlab.Commit {
	ts, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return gitlab.Commit{Title: title, CommittedDate: gitlab.Timestamp{Time: ts}}
}

func issueFromJSON(raw string) *jira.Issue {
	var issue jira.Issue
	if err := json.Unmarshal([]byte(raw), &issue); err != nil {
		panic(err)
	}
	return &issue
}
