package classification

import (
	"context"
	"time"
)

// Repository defines the interface for the classification archive (ClickHouse)
type Repository interface {
	// InsertBatch stores one row per classified comment
	InsertBatch(ctx context.Context, rows []ClassifiedComment) error

	// MoodCountsSince returns per-mood comment counts in the window
	MoodCountsSince(ctx context.Context, since time.Time) (map[string]uint64, error)

	// TopTickersSince returns the most-mentioned tickers in the window
	TopTickersSince(ctx context.Context, since time.Time, limit int) ([]TickerCount, error)
}

// TickerCount pairs a ticker with its mention count
type TickerCount struct {
	Ticker string `ch:"ticker" json:"ticker"`
	Count  uint64 `ch:"mentions" json:"mentions"`
}

// SummaryRepository defines the interface for persisted batch summaries (PostgreSQL)
type SummaryRepository interface {
	// InsertSummary stores one aggregated batch
	InsertSummary(ctx context.Context, summary *BatchSummary) error

	// RecentSummaries returns summaries created since the given time,
	// newest first
	RecentSummaries(ctx context.Context, since time.Time, limit int) ([]BatchSummary, error)
}

// SeenStore tracks which comments have already been classified so scans
// never double-count a comment
type SeenStore interface {
	// MarkSeen records a comment id; returns false if it was already marked
	MarkSeen(ctx context.Context, submissionID, commentID string) (bool, error)
}
