package redis

import (
	"context"
	"fmt"
	"time"

	"degenindex/internal/adapters/redis"
	"degenindex/internal/domain/classification"
)

// Compile-time check
var _ classification.SeenStore = (*SeenStore)(nil)

// SeenStore implements classification.SeenStore using Redis SETNX keys.
// Keys expire after the configured TTL so the cache does not grow without
// bound on long-running scans.
type SeenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeenStore creates a new seen-comment store
func NewSeenStore(client *redis.Client, ttl time.Duration) *SeenStore {
	return &SeenStore{
		client: client,
		ttl:    ttl,
	}
}

// MarkSeen records a comment id; returns false if it was already marked
func (s *SeenStore) MarkSeen(ctx context.Context, submissionID, commentID string) (bool, error) {
	key := fmt.Sprintf("seen:%s:%s", submissionID, commentID)
	return s.client.SetNX(ctx, key, "1", s.ttl)
}
