package index

import (
	"context"
)

// Repository defines the interface for index snapshots (PostgreSQL)
type Repository interface {
	// Insert stores one index reading
	Insert(ctx context.Context, idx *DegenIndex) error

	// Latest returns the most recent reading, or errors.ErrNotFound
	Latest(ctx context.Context) (*DegenIndex, error)
}
