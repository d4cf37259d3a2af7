package scan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"degenindex/internal/adapters/config"
	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/comment"
	"degenindex/internal/events"
	"degenindex/internal/metrics"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// ThreadSource fetches submissions and their comment trees
type ThreadSource interface {
	HotSubmissions(ctx context.Context, subreddit string, limit int) ([]comment.Submission, error)
	Thread(ctx context.Context, submissionID string, limit int) (*comment.Submission, []comment.Comment, error)
}

// EventPublisher publishes pipeline events downstream
type EventPublisher interface {
	PublishClassification(ctx context.Context, event events.ClassificationEvent) error
	PublishSummary(ctx context.Context, event events.SummaryEvent) error
}

// Result reports what one submission scan produced
type Result struct {
	SubmissionID string
	Subreddit    string
	Fetched      int // top-level comments in the thread
	New          int // comments that passed dedupe and were classified
	BatchID      string
	Summary      *classification.Summary
}

// Service runs the ingest-classify-aggregate pipeline for one subreddit.
// The archive insert is the one step that fails a scan; classification
// errors skip the comment and event publishing is best effort.
type Service struct {
	source     ThreadSource
	classifier classification.Classifier
	archive    classification.Repository
	summaries  classification.SummaryRepository
	seen       classification.SeenStore
	publisher  EventPublisher
	cfg        config.ScannerConfig
	log        *logger.Logger
}

// NewService creates a new scan service
func NewService(
	source ThreadSource,
	classifier classification.Classifier,
	archive classification.Repository,
	summaries classification.SummaryRepository,
	seen classification.SeenStore,
	publisher EventPublisher,
	cfg config.ScannerConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		source:     source,
		classifier: classifier,
		archive:    archive,
		summaries:  summaries,
		seen:       seen,
		publisher:  publisher,
		cfg:        cfg,
		log:        log.With("component", "scan_service"),
	}
}

// Scan sweeps the configured subreddit's hot submissions. A failing
// submission is logged and skipped so one bad thread never kills the sweep.
func (s *Service) Scan(ctx context.Context) ([]Result, error) {
	submissions, err := s.source.HotSubmissions(ctx, s.cfg.Subreddit, s.cfg.SubmissionLimit)
	if err != nil {
		return nil, errors.Wrap(err, "fetch hot submissions")
	}

	s.log.Infow("Scan started",
		"subreddit", s.cfg.Subreddit,
		"submissions", len(submissions),
	)

	results := make([]Result, 0, len(submissions))
	for _, sub := range submissions {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result, err := s.ScanSubmission(ctx, sub.ID)
		if err != nil {
			s.log.Errorw("Submission scan failed",
				"submission_id", sub.ID,
				"error", err,
			)
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}

// ScanSubmission ingests one thread, classifies its unseen comments,
// archives the rows and persists the batch summary
func (s *Service) ScanSubmission(ctx context.Context, submissionID string) (*Result, error) {
	sub, comments, err := s.source.Thread(ctx, submissionID, s.cfg.CommentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "fetch thread")
	}

	result := &Result{
		SubmissionID: sub.ID,
		Subreddit:    sub.Subreddit,
		Fetched:      len(comments),
	}

	now := time.Now().UTC()
	records := make([]classification.Record, 0, len(comments))
	rows := make([]classification.ClassifiedComment, 0, len(comments))

	for _, c := range comments {
		fresh, err := s.seen.MarkSeen(ctx, c.SubmissionID, c.ID)
		if err != nil {
			// Dedupe is advisory. When the cache is unreachable a comment
			// may be counted twice, which beats dropping it.
			s.log.Warnw("Seen-store lookup failed, classifying anyway",
				"comment_id", c.ID,
				"error", err,
			)
			fresh = true
		}
		if !fresh {
			continue
		}

		start := time.Now()
		record, err := s.classifier.Classify(ctx, c.Body)
		if err != nil {
			s.log.Errorw("Classification failed, skipping comment",
				"comment_id", c.ID,
				"classifier", s.classifier.Name(),
				"error", err,
			)
			continue
		}
		metrics.RecordClassification(
			s.classifier.Name(),
			record.Sentiment.TradeDirection.String(),
			record.PrimaryMood.String(),
			time.Since(start),
		)

		records = append(records, record)
		rows = append(rows, classification.NewClassifiedComment(c, record, s.classifier.Name(), now))

		if err := s.publisher.PublishClassification(ctx, events.ClassificationEvent{
			CommentID:    c.ID,
			SubmissionID: c.SubmissionID,
			Subreddit:    c.Subreddit,
			Author:       c.AuthorName(),
			CommentScore: c.Score,
			Classifier:   s.classifier.Name(),
			Record:       record,
			ObservedAt:   now,
		}); err != nil {
			s.log.Warnw("Classification event dropped", "comment_id", c.ID, "error", err)
		}
	}

	result.New = len(records)

	if len(rows) > 0 {
		if err := s.archive.InsertBatch(ctx, rows); err != nil {
			return result, errors.Wrap(err, "archive classified comments")
		}
	}

	summary, err := classification.Summarize(records)
	if errors.Is(err, errors.ErrEmptyBatch) {
		s.log.Debugw("No new comments in thread", "submission_id", sub.ID)
		return result, nil
	}
	if err != nil {
		return result, errors.Wrap(err, "summarize batch")
	}

	batch := &classification.BatchSummary{
		ID:                uuid.NewString(),
		SubmissionID:      sub.ID,
		Subreddit:         sub.Subreddit,
		Count:             summary.Count,
		UniqueTickers:     summary.UniqueTickers,
		BullishCount:      summary.BullishCount,
		BearishCount:      summary.BearishCount,
		NeutralCount:      summary.NeutralCount,
		AverageDegenScore: summary.AverageDegenScore,
		CreatedAt:         now,
	}
	if err := s.summaries.InsertSummary(ctx, batch); err != nil {
		return result, errors.Wrap(err, "persist batch summary")
	}
	metrics.RecordBatchSummary(sub.Subreddit, summary.Count)

	if err := s.publisher.PublishSummary(ctx, events.SummaryEvent{
		BatchID:      batch.ID,
		Subreddit:    sub.Subreddit,
		SubmissionID: sub.ID,
		Summary:      *summary,
		GeneratedAt:  now,
	}); err != nil {
		s.log.Warnw("Summary event dropped", "batch_id", batch.ID, "error", err)
	}

	result.BatchID = batch.ID
	result.Summary = summary

	s.log.Infow("Submission scanned",
		"submission_id", sub.ID,
		"fetched", result.Fetched,
		"new", result.New,
		"avg_degen", summary.AverageDegenScore,
	)

	return result, nil
}
