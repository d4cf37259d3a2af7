package consumers

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"degenindex/internal/adapters/kafka"
	"degenindex/internal/api/stream"
	"degenindex/internal/events"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// Broadcaster fans messages out to connected websocket clients
type Broadcaster interface {
	Broadcast(messageType string, payload interface{})
}

// StreamConsumer relays pipeline events from Kafka to the websocket hub.
// One instance consumes one topic; the handler routes by topic name so
// all instances share it.
type StreamConsumer struct {
	consumer *kafka.Consumer
	hub      Broadcaster
	log      *logger.Logger
}

// NewStreamConsumer creates a new stream relay consumer
func NewStreamConsumer(consumer *kafka.Consumer, hub Broadcaster, log *logger.Logger) *StreamConsumer {
	return &StreamConsumer{
		consumer: consumer,
		hub:      hub,
		log:      log.With("component", "stream_consumer"),
	}
}

// Start begins relaying events. Blocks until the context is cancelled.
func (sc *StreamConsumer) Start(ctx context.Context) error {
	sc.log.Info("Starting stream consumer...")

	defer func() {
		if err := sc.consumer.Close(); err != nil {
			sc.log.Errorw("Failed to close consumer", "error", err)
		} else {
			sc.log.Info("✓ Stream consumer closed")
		}
	}()

	if err := sc.consumer.Consume(ctx, sc.handleMessage); err != nil {
		if ctx.Err() != nil {
			sc.log.Info("Stream consumer stopping (context cancelled)")
			return nil
		}
		return errors.Wrap(err, "stream consumer failed")
	}

	return nil
}

func (sc *StreamConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	switch msg.Topic {
	case kafka.TopicClassifications:
		var event events.ClassificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return errors.Wrap(err, "unmarshal classification event")
		}
		sc.hub.Broadcast(stream.TypeClassification, event)

	case kafka.TopicSummaries:
		var event events.SummaryEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return errors.Wrap(err, "unmarshal summary event")
		}
		sc.hub.Broadcast(stream.TypeSummary, event)

	case kafka.TopicIndexUpdates:
		var event events.IndexEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return errors.Wrap(err, "unmarshal index event")
		}
		sc.hub.Broadcast(stream.TypeIndex, event)

	default:
		sc.log.Warnw("Ignoring message from unexpected topic", "topic", msg.Topic)
	}

	return nil
}
