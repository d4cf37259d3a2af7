package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degenindex/internal/adapters/config"
	"degenindex/pkg/errors"
)

const tokenResponse = `{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`

const threadResponse = `[
  {"kind": "Listing", "data": {"children": [
    {"kind": "t3", "data": {
      "id": "abc123",
      "title": "Daily Discussion Thread",
      "subreddit": "wallstreetbets",
      "author": "mod_bot",
      "score": 1523,
      "num_comments": 999,
      "permalink": "/r/wallstreetbets/comments/abc123/daily/",
      "created_utc": 1724500000
    }}
  ]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {
      "id": "c1",
      "link_id": "t3_abc123",
      "subreddit": "wallstreetbets",
      "author": "degen_dave",
      "body": "NVDA calls printing lmao",
      "score": 420,
      "permalink": "/r/wallstreetbets/comments/abc123/daily/c1/",
      "created_utc": 1724500100
    }},
    {"kind": "more", "data": {"id": "m1"}},
    {"kind": "t1", "data": {
      "id": "c2",
      "link_id": "t3_abc123",
      "author": "[deleted]",
      "body": "puts on everything",
      "score": -5,
      "permalink": "/r/wallstreetbets/comments/abc123/daily/c2/",
      "created_utc": 1724500200
    }}
  ]}}
]`

const hotResponse = `{"kind": "Listing", "data": {"children": [
  {"kind": "t3", "data": {
    "id": "s1",
    "title": "YOLO update",
    "subreddit": "wallstreetbets",
    "author": "yolo_guy",
    "score": 9000,
    "num_comments": 314,
    "permalink": "/r/wallstreetbets/comments/s1/yolo/",
    "created_utc": 1724500000
  }},
  {"kind": "t1", "data": {"id": "stray"}},
  {"kind": "t3", "data": {
    "id": "s2",
    "title": "Loss porn",
    "subreddit": "wallstreetbets",
    "author": "[deleted]",
    "score": 12,
    "num_comments": 7,
    "permalink": "/r/wallstreetbets/comments/s2/loss/",
    "created_utc": 1724500300
  }}
]}}`

func testConfig(srv *httptest.Server) config.RedditConfig {
	return config.RedditConfig{
		ClientID:          "test-id",
		ClientSecret:      "test-secret",
		UserAgent:         "degenindex-test/1.0",
		BaseURL:           srv.URL,
		TokenURL:          srv.URL + "/api/v1/access_token",
		RequestsPerMinute: 600,
	}
}

// tokenHandler serves the OAuth endpoint and verifies the script-app
// client_credentials exchange. Assertions only, so a failing check does
// not kill the server goroutine.
func tokenHandler(t *testing.T, calls *atomic.Int64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		id, secret, ok := r.BasicAuth()
		assert.True(t, ok, "token request must carry basic auth")
		assert.Equal(t, "test-id", id)
		assert.Equal(t, "test-secret", secret)
		assert.Equal(t, "degenindex-test/1.0", r.Header.Get("User-Agent"))

		if assert.NoError(t, r.ParseForm()) {
			assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		}

		fmt.Fprint(w, tokenResponse)
	}
}

func TestThreadFetchesSubmissionAndComments(t *testing.T) {
	var tokenCalls atomic.Int64

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/access_token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/comments/abc123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "degenindex-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "1", r.URL.Query().Get("raw_json"))
		assert.Equal(t, "1", r.URL.Query().Get("depth"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		fmt.Fprint(w, threadResponse)
	})

	client := NewClient(testConfig(srv))

	submission, comments, err := client.Thread(context.Background(), "abc123", 5)
	require.NoError(t, err)

	assert.Equal(t, "abc123", submission.ID)
	assert.Equal(t, "Daily Discussion Thread", submission.Title)
	assert.Equal(t, "wallstreetbets", submission.Subreddit)
	assert.Equal(t, 1523, submission.Score)
	assert.Equal(t, 999, submission.NumComments)
	assert.Equal(t, "mod_bot", submission.AuthorName())
	assert.Equal(t, "/r/wallstreetbets/comments/abc123/daily/", submission.Permalink)

	require.Len(t, comments, 2, "more placeholders must be skipped")

	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "abc123", comments[0].SubmissionID)
	assert.Equal(t, "degen_dave", comments[0].AuthorName())
	assert.Equal(t, "NVDA calls printing lmao", comments[0].Body)
	assert.Equal(t, time.Unix(1724500100, 0).UTC(), comments[0].CreatedAt)

	assert.Nil(t, comments[1].Author)
	assert.Equal(t, "[deleted]", comments[1].AuthorName())
	assert.Equal(t, "wallstreetbets", comments[1].Subreddit, "subreddit is inherited from the submission")

	assert.Equal(t, int64(1), tokenCalls.Load())
}

func TestThreadHonorsCommentLimit(t *testing.T) {
	var tokenCalls atomic.Int64

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/access_token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/comments/abc123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threadResponse)
	})

	client := NewClient(testConfig(srv))

	_, comments, err := client.Thread(context.Background(), "abc123", 1)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestTokenIsReusedUntilExpiry(t *testing.T) {
	var tokenCalls atomic.Int64

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/access_token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/comments/abc123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threadResponse)
	})

	client := NewClient(testConfig(srv))

	_, _, err := client.Thread(context.Background(), "abc123", 5)
	require.NoError(t, err)
	_, _, err = client.Thread(context.Background(), "abc123", 5)
	require.NoError(t, err)

	assert.Equal(t, int64(1), tokenCalls.Load(), "token should be exchanged once and cached")
}

func TestThreadErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, errors.ErrRateLimited},
		{"not found", http.StatusNotFound, errors.ErrSubmissionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokenCalls atomic.Int64

			mux := http.NewServeMux()
			srv := httptest.NewServer(mux)
			defer srv.Close()

			mux.HandleFunc("/api/v1/access_token", tokenHandler(t, &tokenCalls))
			mux.HandleFunc("/comments/abc123", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			client := NewClient(testConfig(srv))

			_, _, err := client.Thread(context.Background(), "abc123", 5)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestThreadRequiresCredentials(t *testing.T) {
	client := NewClient(config.RedditConfig{
		UserAgent:         "degenindex-test/1.0",
		RequestsPerMinute: 600,
	})

	_, _, err := client.Thread(context.Background(), "abc123", 5)
	assert.ErrorIs(t, err, errors.ErrMissingCredentials)
}

func TestThreadRejectsNonPositiveLimit(t *testing.T) {
	client := NewClient(config.RedditConfig{RequestsPerMinute: 600})

	_, _, err := client.Thread(context.Background(), "abc123", 0)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestHotSubmissions(t *testing.T) {
	var tokenCalls atomic.Int64

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/access_token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/r/wallstreetbets/hot", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		fmt.Fprint(w, hotResponse)
	})

	client := NewClient(testConfig(srv))

	subs, err := client.HotSubmissions(context.Background(), "wallstreetbets", 25)
	require.NoError(t, err)
	require.Len(t, subs, 2, "non-submission children must be skipped")

	assert.Equal(t, "s1", subs[0].ID)
	assert.Equal(t, "YOLO update", subs[0].Title)
	assert.Equal(t, 9000, subs[0].Score)
	assert.Equal(t, "[deleted]", subs[1].AuthorName())
}

func TestParseThreadRejectsMalformedPayload(t *testing.T) {
	_, _, err := parseThread([]listing{{Kind: "Listing"}}, 5)
	require.Error(t, err)

	_, _, err = parseThread(nil, 5)
	require.Error(t, err)
}
