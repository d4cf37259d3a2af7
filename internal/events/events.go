package events

import (
	"time"

	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/index"
)

// Event payloads published to Kafka. All events are JSON-encoded so
// downstream consumers (stream hub, notifier) share the API wire format.

// ClassificationEvent is emitted once per classified comment
type ClassificationEvent struct {
	CommentID    string                `json:"comment_id"`
	SubmissionID string                `json:"submission_id"`
	Subreddit    string                `json:"subreddit"`
	Author       string                `json:"author"`
	CommentScore int                   `json:"comment_score"`
	Classifier   string                `json:"classifier"`
	Record       classification.Record `json:"record"`
	ObservedAt   time.Time             `json:"observed_at"`
}

// SummaryEvent is emitted once per completed scan batch
type SummaryEvent struct {
	BatchID      string                 `json:"batch_id"`
	Subreddit    string                 `json:"subreddit"`
	SubmissionID string                 `json:"submission_id"`
	Summary      classification.Summary `json:"summary"`
	GeneratedAt  time.Time              `json:"generated_at"`
}

// IndexEvent is emitted when the degen index is recomputed
type IndexEvent struct {
	Index index.DegenIndex `json:"index"`
}
