package testsupport

import (
	"context"
	"testing"

	"degenindex/internal/adapters/config"
	"degenindex/internal/adapters/redis"
)

// NewRedisClient creates a redis client for integration tests and flushes
// the selected database before and after the test. Point REDIS_DB at a
// throwaway database.
func NewRedisClient(t *testing.T, cfg config.RedisConfig) *redis.Client {
	t.Helper()

	client, err := redis.NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	if err := client.Client().FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis before test: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Client().FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}
