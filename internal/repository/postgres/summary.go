package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"degenindex/internal/domain/classification"
	"degenindex/internal/metrics"
)

// Compile-time check
var _ classification.SummaryRepository = (*SummaryRepository)(nil)

// SummaryRepository implements classification.SummaryRepository using sqlx
type SummaryRepository struct {
	db DBTX
}

// NewSummaryRepository creates a new batch summary repository
func NewSummaryRepository(db DBTX) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// scanBatchSummary scans a single batch summary from a database row
func scanBatchSummary(row interface {
	Scan(dest ...interface{}) error
}) (*classification.BatchSummary, error) {
	s := &classification.BatchSummary{}

	err := row.Scan(
		&s.ID, &s.SubmissionID, &s.Subreddit, &s.Count,
		pq.Array(&s.UniqueTickers),
		&s.BullishCount, &s.BearishCount, &s.NeutralCount,
		&s.AverageDegenScore, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// InsertSummary stores one aggregated batch
func (r *SummaryRepository) InsertSummary(ctx context.Context, summary *classification.BatchSummary) error {
	query := `
		INSERT INTO batch_summaries (
			id, submission_id, subreddit, comment_count, unique_tickers,
			bullish_count, bearish_count, neutral_count, average_degen_score, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		summary.ID, summary.SubmissionID, summary.Subreddit, summary.Count,
		pq.Array(summary.UniqueTickers),
		summary.BullishCount, summary.BearishCount, summary.NeutralCount,
		summary.AverageDegenScore, summary.CreatedAt,
	)
	metrics.RecordDBQuery("postgres", "insert_summary", time.Since(start), err)

	return err
}

// RecentSummaries returns summaries created since the given time, newest first
func (r *SummaryRepository) RecentSummaries(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error) {
	query := `
		SELECT
			id, submission_id, subreddit, comment_count, unique_tickers,
			bullish_count, bearish_count, neutral_count, average_degen_score, created_at
		FROM batch_summaries
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, since, limit)
	metrics.RecordDBQuery("postgres", "recent_summaries", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []classification.BatchSummary
	for rows.Next() {
		s, err := scanBatchSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *s)
	}

	return summaries, rows.Err()
}
