package kafka

// Topic definitions for Kafka event streaming
const (
	// Classification events, one message per classified comment
	TopicClassifications = "degen.classifications"

	// Batch summary events, one message per completed scan batch
	TopicSummaries = "degen.summaries"

	// Index recomputation events
	TopicIndexUpdates = "degen.index_updates"
)
