package testsupport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"degenindex/internal/adapters/clickhouse"
	"degenindex/internal/adapters/config"
)

// ClickHouseTestHelper manages cleanup for ClickHouse integration tests.
// ClickHouse has no rollback, so tests tag their rows with distinctive
// values and register a conditional delete.
type ClickHouseTestHelper struct {
	client *clickhouse.Client
}

// NewClickHouseTestHelper creates a ClickHouse client for tests.
func NewClickHouseTestHelper(t *testing.T, cfg config.ClickHouseConfig) *ClickHouseTestHelper {
	t.Helper()

	client, err := clickhouse.NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to connect to clickhouse: %v", err)
	}

	helper := &ClickHouseTestHelper{client: client}
	t.Cleanup(func() { _ = client.Close() })
	return helper
}

// Client returns the underlying ClickHouse client.
func (h *ClickHouseTestHelper) Client() *clickhouse.Client {
	return h.client
}

// EnsureTable applies an idempotent CREATE TABLE statement.
func (h *ClickHouseTestHelper) EnsureTable(t *testing.T, ddl string) {
	t.Helper()

	if err := h.client.Exec(context.Background(), ddl); err != nil {
		t.Fatalf("failed to create clickhouse table: %v", err)
	}
}

// RegisterTableCleanup schedules deletion of rows matching a condition
// after the test completes.
// Example: RegisterTableCleanup(t, "classified_comments", "subreddit = 'testsub'")
func (h *ClickHouseTestHelper) RegisterTableCleanup(t *testing.T, table, condition string) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Lightweight DELETE for immediate cleanup (ALTER TABLE DELETE is async)
		query := fmt.Sprintf("DELETE FROM %s WHERE %s", table, condition)
		_ = h.client.Exec(ctx, query)
	})
}
