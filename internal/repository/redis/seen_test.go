package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degenindex/internal/testsupport"
)

func TestSeenStore_MarkSeen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cfg := testsupport.LoadDatabaseConfigsFromEnv(t)
	client := testsupport.NewRedisClient(t, cfg.Redis)

	store := NewSeenStore(client, time.Minute)
	ctx := context.Background()

	first, err := store.MarkSeen(ctx, "abc123", "c1")
	require.NoError(t, err)
	assert.True(t, first, "first sighting must report fresh")

	second, err := store.MarkSeen(ctx, "abc123", "c1")
	require.NoError(t, err)
	assert.False(t, second, "repeat sighting must report seen")

	otherComment, err := store.MarkSeen(ctx, "abc123", "c2")
	require.NoError(t, err)
	assert.True(t, otherComment, "keys are scoped per comment")

	otherSubmission, err := store.MarkSeen(ctx, "xyz789", "c1")
	require.NoError(t, err)
	assert.True(t, otherSubmission, "keys are scoped per submission")
}

func TestSeenStore_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cfg := testsupport.LoadDatabaseConfigsFromEnv(t)
	client := testsupport.NewRedisClient(t, cfg.Redis)

	store := NewSeenStore(client, 100*time.Millisecond)
	ctx := context.Background()

	fresh, err := store.MarkSeen(ctx, "abc123", "c1")
	require.NoError(t, err)
	require.True(t, fresh)

	time.Sleep(250 * time.Millisecond)

	again, err := store.MarkSeen(ctx, "abc123", "c1")
	require.NoError(t, err)
	assert.True(t, again, "expired keys must read as fresh")
}
