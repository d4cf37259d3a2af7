package consumers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"degenindex/internal/adapters/kafka"
	"degenindex/internal/api/stream"
	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/index"
	"degenindex/internal/events"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

func testLogger() *logger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return &logger.Logger{SugaredLogger: zapLogger.Sugar()}
}

type broadcastCall struct {
	messageType string
	payload     interface{}
}

type mockBroadcaster struct {
	calls []broadcastCall
}

func (m *mockBroadcaster) Broadcast(messageType string, payload interface{}) {
	m.calls = append(m.calls, broadcastCall{messageType: messageType, payload: payload})
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, event events.SummaryEvent) error
}

func (m *mockNotifier) NotifySummary(ctx context.Context, event events.SummaryEvent) error {
	return m.notifyFunc(ctx, event)
}

func message(t *testing.T, topic string, payload interface{}) kafkago.Message {
	t.Helper()
	value, err := json.Marshal(payload)
	require.NoError(t, err)
	return kafkago.Message{Topic: topic, Value: value}
}

func TestStreamConsumerRoutesClassification(t *testing.T) {
	hub := &mockBroadcaster{}
	sc := NewStreamConsumer(nil, hub, testLogger())

	event := events.ClassificationEvent{
		CommentID:    "c1",
		SubmissionID: "t3_abc",
		Subreddit:    "wallstreetbets",
		Classifier:   "heuristic",
		Record: classification.Record{
			IsTradePlan: true,
			Tickers:     []string{"SPY"},
		},
	}

	err := sc.handleMessage(context.Background(), message(t, kafka.TopicClassifications, event))
	require.NoError(t, err)

	require.Len(t, hub.calls, 1)
	assert.Equal(t, stream.TypeClassification, hub.calls[0].messageType)

	relayed, ok := hub.calls[0].payload.(events.ClassificationEvent)
	require.True(t, ok)
	assert.Equal(t, "c1", relayed.CommentID)
	assert.Equal(t, []string{"SPY"}, relayed.Record.Tickers)
}

func TestStreamConsumerRoutesSummaryAndIndex(t *testing.T) {
	hub := &mockBroadcaster{}
	sc := NewStreamConsumer(nil, hub, testLogger())

	summary := events.SummaryEvent{BatchID: "b1", Subreddit: "wallstreetbets"}
	require.NoError(t, sc.handleMessage(context.Background(), message(t, kafka.TopicSummaries, summary)))

	update := events.IndexEvent{Index: index.DegenIndex{Value: 56, Rating: index.RatingDegen}}
	require.NoError(t, sc.handleMessage(context.Background(), message(t, kafka.TopicIndexUpdates, update)))

	require.Len(t, hub.calls, 2)
	assert.Equal(t, stream.TypeSummary, hub.calls[0].messageType)
	assert.Equal(t, stream.TypeIndex, hub.calls[1].messageType)

	relayed, ok := hub.calls[1].payload.(events.IndexEvent)
	require.True(t, ok)
	assert.Equal(t, 56, relayed.Index.Value)
}

func TestStreamConsumerRejectsMalformedPayload(t *testing.T) {
	hub := &mockBroadcaster{}
	sc := NewStreamConsumer(nil, hub, testLogger())

	msg := kafkago.Message{Topic: kafka.TopicClassifications, Value: []byte("not json")}
	err := sc.handleMessage(context.Background(), msg)

	require.Error(t, err)
	assert.Empty(t, hub.calls)
}

func TestStreamConsumerIgnoresUnknownTopic(t *testing.T) {
	hub := &mockBroadcaster{}
	sc := NewStreamConsumer(nil, hub, testLogger())

	msg := kafkago.Message{Topic: "some.other.topic", Value: []byte("{}")}
	require.NoError(t, sc.handleMessage(context.Background(), msg))
	assert.Empty(t, hub.calls)
}

func TestNotificationConsumerDeliversDigest(t *testing.T) {
	var got events.SummaryEvent
	notifier := &mockNotifier{
		notifyFunc: func(ctx context.Context, event events.SummaryEvent) error {
			got = event
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "delivery context should be bounded")
			assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, time.Second)
			return nil
		},
	}
	nc := NewNotificationConsumer(nil, notifier, testLogger())

	event := events.SummaryEvent{
		BatchID:      "b1",
		Subreddit:    "wallstreetbets",
		SubmissionID: "t3_abc",
		Summary:      classification.Summary{Count: 7, BullishCount: 4},
	}

	err := nc.handleMessage(context.Background(), message(t, kafka.TopicSummaries, event))
	require.NoError(t, err)
	assert.Equal(t, "b1", got.BatchID)
	assert.Equal(t, 7, got.Summary.Count)
}

func TestNotificationConsumerPropagatesSendFailure(t *testing.T) {
	notifier := &mockNotifier{
		notifyFunc: func(ctx context.Context, event events.SummaryEvent) error {
			return errors.New("telegram unavailable")
		},
	}
	nc := NewNotificationConsumer(nil, notifier, testLogger())

	event := events.SummaryEvent{BatchID: "b1"}
	err := nc.handleMessage(context.Background(), message(t, kafka.TopicSummaries, event))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send summary digest")
}

func TestNotificationConsumerRejectsMalformedPayload(t *testing.T) {
	nc := NewNotificationConsumer(nil, &mockNotifier{}, testLogger())

	msg := kafkago.Message{Topic: kafka.TopicSummaries, Value: []byte("%%%")}
	err := nc.handleMessage(context.Background(), msg)
	require.Error(t, err)
}
