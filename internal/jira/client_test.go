package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Issue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "bot" || pass != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "/rest/api/2/issue/ABC-12", r.URL.Path)
		_, _ = w.Write([]byte(`{"key":"ABC-12","fields":{"summary":"Fix login","customfield_10063":3.0}}`))
	}))
	defer srv.Close()

	issue, err := NewClient(srv.URL, "bot", "hunter2", time.Second, nil).Issue(context.Background(), "ABC-12")
	require.NoError(t, err)

	summary, ok := issue.Summary()
	assert.True(t, ok)
	assert.Equal(t, "Fix login", summary)

	sp, ok := issue.Field("customfield_10063")
	assert.True(t, ok)
	assert.Equal(t, "3", sp)
}

func TestClient_Issue_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/2/issue/NOPE-1":
			w.WriteHeader(http.StatusNotFound)
		case "/rest/api/2/issue/BAD-1":
			_, _ = w.Write([]byte(`{"fields":`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "u", "p", time.Second, nil)

	_, err := c.Issue(context.Background(), "NOPE-1")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Issue(context.Background(), "BAD-1")
	assert.ErrorContains(t, err, "decode issue BAD-1")

	_, err = c.Issue(context.Background(), "ERR-1")
	assert.ErrorContains(t, err, "500")
}

func TestIssue_Field(t *testing.T) {
	var issue Issue
	require.NoError(t, json.Unmarshal([]byte(`{
		"key": "ABC-1",
		"fields": {
			"summary": null,
			"points": 2.5,
			"label": "XL",
			"flag": true,
			"obj": {"value": "L"}
		}
	}`), &issue))

	_, ok := issue.Summary()
	assert.False(t, ok)

	got, ok := issue.Field("points")
	assert.True(t, ok)
	assert.Equal(t, "2.5", got)

	got, _ = issue.Field("label")
	assert.Equal(t, "XL", got)

	got, _ = issue.Field("flag")
	assert.Equal(t, "true", got)

	got, _ = issue.Field("obj")
	assert.Equal(t, `{"value": "L"}`, got)

	_, ok = issue.Field("missing")
	assert.False(t, ok)

	var nilIssue *Issue
	_, ok = nilIssue.Field("summary")
	assert.False(t, ok)
}
