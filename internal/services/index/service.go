package index

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/index"
	"degenindex/internal/events"
	"degenindex/internal/metrics"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

const (
	// recomputeBatchLimit caps how many summaries one recompute loads
	recomputeBatchLimit = 500

	// topTickersLimit caps the ticker leaderboard in Overview
	topTickersLimit = 10
)

// EventPublisher publishes index recomputation events
type EventPublisher interface {
	PublishIndexUpdate(ctx context.Context, event events.IndexEvent) error
}

// Service computes and serves the degen index
type Service struct {
	summaries classification.SummaryRepository
	archive   classification.Repository
	store     index.Repository
	publisher EventPublisher
	window    time.Duration
	log       *logger.Logger
}

// NewService creates a new index service
func NewService(
	summaries classification.SummaryRepository,
	archive classification.Repository,
	store index.Repository,
	publisher EventPublisher,
	window time.Duration,
	log *logger.Logger,
) *Service {
	return &Service{
		summaries: summaries,
		archive:   archive,
		store:     store,
		publisher: publisher,
		window:    window,
		log:       log.With("component", "index_service"),
	}
}

// Recompute derives a fresh index reading from the batches inside the
// window and persists it. Returns errors.ErrNotFound when no batches
// exist yet.
func (s *Service) Recompute(ctx context.Context) (*index.DegenIndex, error) {
	since := time.Now().UTC().Add(-s.window)

	batches, err := s.summaries.RecentSummaries(ctx, since, recomputeBatchLimit)
	if err != nil {
		return nil, errors.Wrap(err, "load recent summaries")
	}
	if len(batches) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "no batches in window")
	}

	value, sample := composite(batches)
	idx := &index.DegenIndex{
		Timestamp:  time.Now().UTC(),
		Value:      value,
		Rating:     index.RatingFor(value),
		SampleSize: sample,
	}

	if err := s.store.Insert(ctx, idx); err != nil {
		return nil, errors.Wrap(err, "persist index reading")
	}
	metrics.SetDegenIndex(value)

	if err := s.publisher.PublishIndexUpdate(ctx, events.IndexEvent{Index: *idx}); err != nil {
		s.log.Warnw("Index event dropped", "error", err)
	}

	s.log.Infow("Degen index recomputed",
		"value", value,
		"rating", idx.Rating,
		"sample_size", sample,
		"batches", len(batches),
	)

	return idx, nil
}

// Latest returns the most recent persisted reading
func (s *Service) Latest(ctx context.Context) (*index.DegenIndex, error) {
	return s.store.Latest(ctx)
}

// Overview bundles the latest reading with the window context behind it
type Overview struct {
	Index      *index.DegenIndex            `json:"index"`
	TopTickers []classification.TickerCount `json:"top_tickers"`
	MoodCounts map[string]uint64            `json:"mood_counts"`
}

// Overview returns the latest reading plus the top tickers and mood
// breakdown from the same window
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	idx, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-s.window)

	tickers, err := s.archive.TopTickersSince(ctx, since, topTickersLimit)
	if err != nil {
		return nil, errors.Wrap(err, "load top tickers")
	}
	moods, err := s.archive.MoodCountsSince(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "load mood counts")
	}

	return &Overview{
		Index:      idx,
		TopTickers: tickers,
		MoodCounts: moods,
	}, nil
}

// composite folds batch summaries into a 0-100 reading. The base is the
// comment-weighted mean degen score scaled to 0-100; the net bullish
// share tilts it by up to ten points either way. Decimal arithmetic
// keeps the rounding half-up at band boundaries.
func composite(batches []classification.BatchSummary) (value, sample int) {
	var weighted, bull, bear decimal.Decimal
	var total int64

	for _, b := range batches {
		count := decimal.NewFromInt(int64(b.Count))
		weighted = weighted.Add(decimal.NewFromFloat(b.AverageDegenScore).Mul(count))
		bull = bull.Add(decimal.NewFromInt(int64(b.BullishCount)))
		bear = bear.Add(decimal.NewFromInt(int64(b.BearishCount)))
		total += int64(b.Count)
	}
	if total == 0 {
		return 0, 0
	}

	size := decimal.NewFromInt(total)
	ten := decimal.NewFromInt(10)

	// mean lands in 0..10, tilt in -10..10
	mean := weighted.Div(size)
	tilt := bull.Sub(bear).Div(size).Mul(ten)
	raw := mean.Mul(ten).Add(tilt).Round(0)

	value = int(raw.IntPart())
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return value, int(total)
}
