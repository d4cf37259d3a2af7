package postgres

// SchemaStatements creates the summary and index tables. Every statement
// is idempotent so the set can be re-applied to a live database.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS batch_summaries (
		id                  TEXT PRIMARY KEY,
		submission_id       TEXT NOT NULL,
		subreddit           TEXT NOT NULL,
		comment_count       INTEGER NOT NULL,
		unique_tickers      TEXT[] NOT NULL DEFAULT '{}',
		bullish_count       INTEGER NOT NULL,
		bearish_count       INTEGER NOT NULL,
		neutral_count       INTEGER NOT NULL,
		average_degen_score DOUBLE PRECISION NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batch_summaries_created_at
		ON batch_summaries (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS degen_index (
		timestamp   TIMESTAMPTZ NOT NULL,
		value       INTEGER NOT NULL,
		rating      TEXT NOT NULL,
		sample_size INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_degen_index_timestamp
		ON degen_index (timestamp DESC)`,
}
