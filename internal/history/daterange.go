// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package history

import (
	"errors"
	"time"

	"github.com/bartekus/ticketlog/internal/gitlab"
)

// DateLayout is the format used for both ends of a DateRange.
const DateLayout = time.DateOnly

var ErrEmptyHistory = errors.New("no commits found")

// DateRange spans the oldest and newest commit of a history.
type DateRange struct {
	Earliest time.Time
	Latest   time.Time
}

func (r DateRange) String() string {
	return r.Earliest.Format(DateLayout) + " - " + r.Latest.Format(DateLayout)
}

// ComputeDateRange takes the dates of the last and first commit. The input
// order is trusted to be newest first and is not checked.
func ComputeDateRange(commits []gitlab.Commit) (DateRange, error) {
	if len(commits) == 0 {
		return DateRange{}, ErrEmptyHistory
	}
	return DateRange{
		Earliest: commits[len(commits)-1].CommittedDate.Time,
		Latest:   commits[0].CommittedDate.Time,
	}, nil
}
