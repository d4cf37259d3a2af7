package consumers

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"degenindex/internal/adapters/kafka"
	"degenindex/internal/events"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// SummaryNotifier delivers batch digests to an external channel
type SummaryNotifier interface {
	NotifySummary(ctx context.Context, event events.SummaryEvent) error
}

// NotificationConsumer turns batch summary events into chat digests
type NotificationConsumer struct {
	consumer *kafka.Consumer
	notifier SummaryNotifier
	log      *logger.Logger
}

// NewNotificationConsumer creates a new notification consumer
func NewNotificationConsumer(consumer *kafka.Consumer, notifier SummaryNotifier, log *logger.Logger) *NotificationConsumer {
	return &NotificationConsumer{
		consumer: consumer,
		notifier: notifier,
		log:      log.With("component", "notification_consumer"),
	}
}

// Start begins consuming summary events. Blocks until the context is
// cancelled.
func (nc *NotificationConsumer) Start(ctx context.Context) error {
	nc.log.Info("Starting notification consumer...")

	defer func() {
		if err := nc.consumer.Close(); err != nil {
			nc.log.Errorw("Failed to close consumer", "error", err)
		} else {
			nc.log.Info("✓ Notification consumer closed")
		}
	}()

	if err := nc.consumer.Consume(ctx, nc.handleMessage); err != nil {
		if ctx.Err() != nil {
			nc.log.Info("Notification consumer stopping (context cancelled)")
			return nil
		}
		return errors.Wrap(err, "notification consumer failed")
	}

	return nil
}

func (nc *NotificationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var event events.SummaryEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return errors.Wrap(err, "unmarshal summary event")
	}

	// Bound delivery independently of the consume loop context so one
	// stuck send cannot stall shutdown
	sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := nc.notifier.NotifySummary(sendCtx, event); err != nil {
		return errors.Wrap(err, "send summary digest")
	}

	nc.log.Debugw("Digest delivered", "batch_id", event.BatchID, "subreddit", event.Subreddit)
	return nil
}
