// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package jira reads single issues from the Jira REST API (v2) using Basic auth.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const issueURLFmt = "%s/rest/api/2/issue/%s"

var ErrNotFound = errors.New("issue not found")

// Client fetches issues from one Jira instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	user       string
	password   string
	log        *slog.Logger
}

// NewClient returns a Jira client authenticating with user and password.
func NewClient(baseURL, user, password string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		user:       user,
		password:   password,
		log:        log,
	}
}

func (c *Client) issueURL(key string) string {
	return fmt.Sprintf(issueURLFmt, c.baseURL, url.PathEscape(key))
}

// Issue fetches the issue identified by key. Returns ErrNotFound on 404.
func (c *Client) Issue(ctx context.Context, key string) (*Issue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.issueURL(key), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching issue", "key", key)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("issue API: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("decode issue %s: %w", key, err)
	}
	if issue.Key == "" {
		issue.Key = key
	}
	return &issue, nil
}
