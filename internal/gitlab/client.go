// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package gitlab fetches the commit history of a single file from the GitLab REST API.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PerPage is the page size requested from the commits endpoint. Only the
// first page is ever fetched.
const PerPage = 100

const commitsURLFmt = "%s/api/v4/projects/%s/repository/commits?path=%s&per_page=%d&page=1"

// FetchError reports a failed commits request: transport failure, non-2xx
// status or an undecodable body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch commits %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch commits %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to one GitLab instance using a private token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *slog.Logger
}

// NewClient returns a GitLab API client. A nil logger falls back to slog.Default.
func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		log:        log,
	}
}

func (c *Client) commitsURL(projectID, filePath string) string {
	return fmt.Sprintf(commitsURLFmt, c.baseURL, url.PathEscape(projectID), url.QueryEscape(filePath), PerPage)
}

// FetchCommits returns the commits touching filePath in the given project,
// in the order the API sent them (newest first).
func (c *Client) FetchCommits(ctx context.Context, projectID, filePath string) ([]Commit, error) {
	u := c.commitsURL(projectID, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching commits", "project", projectID, "path", filePath)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("commits API: %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: u, StatusCode: resp.StatusCode, Err: err}
	}
	var commits []Commit
	if err := json.Unmarshal(body, &commits); err != nil {
		return nil, &FetchError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode commits: %w", err)}
	}

	c.log.Debug("fetched commits", "count", len(commits))
	return commits, nil
}
