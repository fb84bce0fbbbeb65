// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package jira

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Issue is a Jira issue with its fields kept undecoded, since the field
// carrying story points differs between Jira instances.
type Issue struct {
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// Summary returns fields.summary, or false when it is absent or null.
func (i *Issue) Summary() (string, bool) {
	return i.Field("summary")
}

// Field renders a scalar field as text. Numbers use their shortest form
// (3, not 3.0). Absent and null fields report false.
func (i *Issue) Field(name string) (string, bool) {
	if i == nil {
		return "", false
	}
	raw, ok := i.Fields[name]
	if !ok {
		return "", false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return strings.TrimSpace(string(raw)), true
	}
}
