package postgres

import (
	"context"
	"database/sql"
	"time"

	"degenindex/internal/domain/index"
	"degenindex/internal/metrics"
	"degenindex/pkg/errors"
)

// Compile-time check
var _ index.Repository = (*IndexRepository)(nil)

// IndexRepository implements index.Repository using sqlx
type IndexRepository struct {
	db DBTX
}

// NewIndexRepository creates a new index snapshot repository
func NewIndexRepository(db DBTX) *IndexRepository {
	return &IndexRepository{db: db}
}

// Insert stores one index reading
func (r *IndexRepository) Insert(ctx context.Context, idx *index.DegenIndex) error {
	query := `
		INSERT INTO degen_index (timestamp, value, rating, sample_size)
		VALUES ($1, $2, $3, $4)`

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query, idx.Timestamp, idx.Value, idx.Rating, idx.SampleSize)
	metrics.RecordDBQuery("postgres", "insert_index", time.Since(start), err)

	return err
}

// Latest returns the most recent reading
func (r *IndexRepository) Latest(ctx context.Context) (*index.DegenIndex, error) {
	var idx index.DegenIndex

	query := `
		SELECT timestamp, value, rating, sample_size
		FROM degen_index
		ORDER BY timestamp DESC
		LIMIT 1`

	start := time.Now()
	err := r.db.GetContext(ctx, &idx, query)
	metrics.RecordDBQuery("postgres", "latest_index", time.Since(start), err)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "no index readings yet")
	}
	if err != nil {
		return nil, err
	}

	return &idx, nil
}
