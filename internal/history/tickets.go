// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package history

import (
	"iter"
	"regexp"

	"github.com/bartekus/ticketlog/internal/gitlab"
)

var ticketPattern = regexp.MustCompile(`[a-zA-Z]+-\d+`)

// ExtractTicket returns the first ticket key found in title.
func ExtractTicket(title string) (string, bool) {
	key := ticketPattern.FindString(title)
	return key, key != ""
}

// Tickets yields the distinct ticket keys referenced by commit titles, in the
// order they are first seen. Keys compare case-sensitively.
func Tickets(commits []gitlab.Commit) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, c := range commits {
			key, ok := ExtractTicket(c.Title)
			if !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if !yield(key) {
				return
			}
		}
	}
}
