package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/index"
	indexsvc "degenindex/internal/services/index"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

func testLogger() *logger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return &logger.Logger{SugaredLogger: zapLogger.Sugar()}
}

type mockIndexReader struct {
	overviewFunc func(ctx context.Context) (*indexsvc.Overview, error)
}

func (m *mockIndexReader) Overview(ctx context.Context) (*indexsvc.Overview, error) {
	return m.overviewFunc(ctx)
}

type mockSummaryReader struct {
	recentFunc func(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error)
}

func (m *mockSummaryReader) RecentSummaries(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error) {
	return m.recentFunc(ctx, since, limit)
}

func TestHandleIndex_ReturnsOverview(t *testing.T) {
	reader := &mockIndexReader{
		overviewFunc: func(ctx context.Context) (*indexsvc.Overview, error) {
			return &indexsvc.Overview{
				Index: &index.DegenIndex{
					Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
					Value:      56,
					Rating:     index.RatingDegen,
					SampleSize: 40,
				},
				TopTickers: []classification.TickerCount{{Ticker: "SPY", Count: 12}},
				MoodCounts: map[string]uint64{"euphoria": 30, "fear": 10},
			}, nil
		},
	}

	h := NewHandler(reader, nil, 24*time.Hour, testLogger())
	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/api/v1/index", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Index struct {
			Value  int    `json:"value"`
			Rating string `json:"rating"`
		} `json:"index"`
		TopTickers []struct {
			Ticker   string `json:"ticker"`
			Mentions uint64 `json:"mentions"`
		} `json:"top_tickers"`
		MoodCounts map[string]uint64 `json:"mood_counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 56, body.Index.Value)
	assert.Equal(t, "degen", body.Index.Rating)
	require.Len(t, body.TopTickers, 1)
	assert.Equal(t, "SPY", body.TopTickers[0].Ticker)
	assert.Equal(t, uint64(30), body.MoodCounts["euphoria"])
}

func TestHandleIndex_NotFoundBeforeFirstReading(t *testing.T) {
	reader := &mockIndexReader{
		overviewFunc: func(ctx context.Context) (*indexsvc.Overview, error) {
			return nil, errors.Wrap(errors.ErrNotFound, "no index readings yet")
		},
	}

	h := NewHandler(reader, nil, 24*time.Hour, testLogger())
	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/api/v1/index", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no index readings yet")
}

func TestHandleIndex_InternalError(t *testing.T) {
	reader := &mockIndexReader{
		overviewFunc: func(ctx context.Context) (*indexsvc.Overview, error) {
			return nil, errors.New("clickhouse down")
		},
	}

	h := NewHandler(reader, nil, 24*time.Hour, testLogger())
	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/api/v1/index", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "clickhouse", "internal details must not leak")
}

func TestHandleSummaries_DefaultWindowAndLimit(t *testing.T) {
	var gotSince time.Time
	var gotLimit int
	reader := &mockSummaryReader{
		recentFunc: func(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error) {
			gotSince = since
			gotLimit = limit
			return []classification.BatchSummary{
				{ID: "b1", SubmissionID: "t3_abc", Subreddit: "wallstreetbets", Count: 5},
			}, nil
		},
	}

	h := NewHandler(nil, reader, 24*time.Hour, testLogger())
	rec := httptest.NewRecorder()
	h.HandleSummaries(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summaries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, gotLimit)
	assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), gotSince, 5*time.Second)

	var body struct {
		Summaries []classification.BatchSummary `json:"summaries"`
		Count     int                           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Summaries, 1)
	assert.Equal(t, "t3_abc", body.Summaries[0].SubmissionID)
}

func TestHandleSummaries_LimitParsing(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{name: "explicit limit", query: "?limit=5", expected: 5},
		{name: "clamped to max", query: "?limit=500", expected: 100},
		{name: "garbage falls back to default", query: "?limit=abc", expected: 20},
		{name: "zero falls back to default", query: "?limit=0", expected: 20},
		{name: "negative falls back to default", query: "?limit=-3", expected: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			reader := &mockSummaryReader{
				recentFunc: func(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error) {
					gotLimit = limit
					return nil, nil
				},
			}

			h := NewHandler(nil, reader, 24*time.Hour, testLogger())
			rec := httptest.NewRecorder()
			h.HandleSummaries(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summaries"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, gotLimit)
		})
	}
}

func TestHandleSummaries_EmptyWindowIsAnEmptyList(t *testing.T) {
	reader := &mockSummaryReader{
		recentFunc: func(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error) {
			return nil, nil
		},
	}

	h := NewHandler(nil, reader, 24*time.Hour, testLogger())
	rec := httptest.NewRecorder()
	h.HandleSummaries(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summaries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"summaries":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestHandleSummaries_StoreFailure(t *testing.T) {
	reader := &mockSummaryReader{
		recentFunc: func(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error) {
			return nil, errors.New("postgres down")
		},
	}

	h := NewHandler(nil, reader, 24*time.Hour, testLogger())
	rec := httptest.NewRecorder()
	h.HandleSummaries(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summaries", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
