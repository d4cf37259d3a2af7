package clickhouse

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"degenindex/internal/domain/classification"
	"degenindex/internal/metrics"
)

// Compile-time check
var _ classification.Repository = (*ClassificationRepository)(nil)

// ClassificationRepository implements classification.Repository using ClickHouse
type ClassificationRepository struct {
	conn driver.Conn
}

// NewClassificationRepository creates a new classification repository
func NewClassificationRepository(conn driver.Conn) *ClassificationRepository {
	return &ClassificationRepository{conn: conn}
}

// InsertBatch inserts one row per classified comment using a columnar batch
func (r *ClassificationRepository) InsertBatch(ctx context.Context, rows []classification.ClassifiedComment) error {
	if len(rows) == 0 {
		return nil
	}

	start := time.Now()

	batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO classified_comments")
	if err != nil {
		metrics.RecordDBQuery("clickhouse", "insert_batch", time.Since(start), err)
		return err
	}

	for i := range rows {
		if err := batch.AppendStruct(&rows[i]); err != nil {
			metrics.RecordDBQuery("clickhouse", "insert_batch", time.Since(start), err)
			return err
		}
	}

	err = batch.Send()
	metrics.RecordDBQuery("clickhouse", "insert_batch", time.Since(start), err)
	return err
}

// MoodCountsSince returns per-mood comment counts in the window
func (r *ClassificationRepository) MoodCountsSince(ctx context.Context, since time.Time) (map[string]uint64, error) {
	var rows []struct {
		Mood  string `ch:"primary_mood"`
		Count uint64 `ch:"cnt"`
	}

	query := `
		SELECT primary_mood, count() AS cnt
		FROM classified_comments
		WHERE classified_at >= $1
		GROUP BY primary_mood`

	start := time.Now()
	err := r.conn.Select(ctx, &rows, query, since)
	metrics.RecordDBQuery("clickhouse", "mood_counts", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]uint64, len(rows))
	for _, row := range rows {
		counts[row.Mood] = row.Count
	}
	return counts, nil
}

// TopTickersSince returns the most-mentioned tickers in the window
func (r *ClassificationRepository) TopTickersSince(ctx context.Context, since time.Time, limit int) ([]classification.TickerCount, error) {
	var tickers []classification.TickerCount

	query := `
		SELECT arrayJoin(tickers) AS ticker, count() AS mentions
		FROM classified_comments
		WHERE classified_at >= $1
		GROUP BY ticker
		ORDER BY mentions DESC
		LIMIT $2`

	start := time.Now()
	err := r.conn.Select(ctx, &tickers, query, since, limit)
	metrics.RecordDBQuery("clickhouse", "top_tickers", time.Since(start), err)
	return tickers, err
}
