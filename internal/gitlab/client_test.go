package gitlab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchCommits(t *testing.T) {
	var gotPath, gotQuery, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get("PRIVATE-TOKEN")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"b2","title":"ABC-12 retry","committed_date":"2024-02-01T09:30:00.000+01:00"},
			{"id":"a1","title":"ABC-12 fix","committed_date":"2024-01-15T18:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "s3cret", time.Second, nil)
	commits, err := c.FetchCommits(context.Background(), "group/app", "src/main file.go")
	require.NoError(t, err)

	assert.Equal(t, "/api/v4/projects/group%2Fapp/repository/commits", gotPath)
	assert.Equal(t, "path=src%2Fmain+file.go&per_page=100&page=1", gotQuery)
	assert.Equal(t, "s3cret", gotToken)

	require.Len(t, commits, 2)
	assert.Equal(t, "ABC-12 retry", commits[0].Title)
	assert.Equal(t, "2024-02-01", commits[0].CommittedDate.Format(time.DateOnly))
	assert.Equal(t, "a1", commits[1].ID)
}

func TestClient_FetchCommits_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"401 Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", time.Second, nil).FetchCommits(context.Background(), "1", "a.go")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusUnauthorized, fe.StatusCode)
}

func TestClient_FetchCommits_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "t", time.Second, nil).FetchCommits(context.Background(), "1", "a.go")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusOK, fe.StatusCode)
}

func TestClient_FetchCommits_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "t", time.Second, nil).FetchCommits(context.Background(), "1", "a.go")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"2024-02-01T23:30:00.000-05:00"`, "2024-02-01"},
		{`"2024-02-01T10:00:00Z"`, "2024-02-01"},
		{`"2024-02-01T10:00:00"`, "2024-02-01"},
		{`"2024-01-15"`, "2024-01-15"},
	}
	for _, tt := range tests {
		var ts Timestamp
		require.NoError(t, ts.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, ts.Format(time.DateOnly), tt.in)
	}

	var ts Timestamp
	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
	assert.Error(t, ts.UnmarshalJSON([]byte(`42`)))
	assert.NoError(t, ts.UnmarshalJSON([]byte(`null`)))
	assert.True(t, ts.IsZero())
}
