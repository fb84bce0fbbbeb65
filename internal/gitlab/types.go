// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package gitlab

import (
	"encoding/json"
	"fmt"
	"time"
)

// Commit is the subset of the GitLab commit resource the reports use.
type Commit struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CommittedDate Timestamp `json:"committed_date"`
}

// Timestamp decodes GitLab's committed_date. The API sends RFC3339 with
// fractional seconds; bare dates are accepted as well.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("committed_date: %w", err)
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("committed_date: unrecognized time %q", s)
}
