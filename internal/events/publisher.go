package events

import (
	"context"

	"degenindex/internal/adapters/kafka"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// Publisher publishes events to Kafka
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(producer *kafka.Producer, log *logger.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		log:      log,
	}
}

// PublishClassification publishes a per-comment classification event
func (p *Publisher) PublishClassification(ctx context.Context, event ClassificationEvent) error {
	return p.publish(ctx, kafka.TopicClassifications, event.CommentID, event)
}

// PublishSummary publishes a batch summary event
func (p *Publisher) PublishSummary(ctx context.Context, event SummaryEvent) error {
	return p.publish(ctx, kafka.TopicSummaries, event.BatchID, event)
}

// PublishIndexUpdate publishes an index recomputation event
func (p *Publisher) PublishIndexUpdate(ctx context.Context, event IndexEvent) error {
	return p.publish(ctx, kafka.TopicIndexUpdates, "degen_index", event)
}

func (p *Publisher) publish(ctx context.Context, topic, key string, event interface{}) error {
	if err := p.producer.Publish(ctx, topic, key, event); err != nil {
		p.log.Errorw("Failed to publish event",
			"topic", topic,
			"error", err,
		)
		return errors.Wrap(err, "send to kafka")
	}

	p.log.Debugw("Event published", "topic", topic, "key", key)
	return nil
}
