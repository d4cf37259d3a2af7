package workers

import (
	"context"
	"time"

	"degenindex/internal/domain/index"
	"degenindex/internal/services/scan"
	"degenindex/pkg/errors"
)

// scanLockKey serializes sweeps when multiple replicas share one Redis
const scanLockKey = "submission_scan"

// SubredditScanner runs one sweep of the configured subreddit
type SubredditScanner interface {
	Scan(ctx context.Context) ([]scan.Result, error)
}

// IndexRecomputer refreshes the degen index from stored batches
type IndexRecomputer interface {
	Recompute(ctx context.Context) (*index.DegenIndex, error)
}

// Locker serializes sweeps across replicas. Optional; nil disables locking.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// SubmissionScanner periodically sweeps hot submissions, then refreshes
// the degen index when the sweep produced new batches
type SubmissionScanner struct {
	*BaseWorker
	scanner SubredditScanner
	index   IndexRecomputer
	locker  Locker
}

// NewSubmissionScanner creates a new submission scanner worker
func NewSubmissionScanner(
	scanner SubredditScanner,
	index IndexRecomputer,
	locker Locker,
	interval time.Duration,
	enabled bool,
) *SubmissionScanner {
	return &SubmissionScanner{
		BaseWorker: NewBaseWorker("submission_scanner", interval, enabled),
		scanner:    scanner,
		index:      index,
		locker:     locker,
	}
}

// Run executes one sweep iteration
func (w *SubmissionScanner) Run(ctx context.Context) error {
	if w.locker != nil {
		acquired, err := w.locker.AcquireLock(ctx, scanLockKey, w.Interval())
		if err != nil {
			return errors.Wrap(err, "acquire scan lock")
		}
		if !acquired {
			w.Log().Debug("Another replica holds the scan lock, skipping sweep")
			return nil
		}
		defer func() {
			if err := w.locker.ReleaseLock(context.WithoutCancel(ctx), scanLockKey); err != nil {
				w.Log().Warnw("Failed to release scan lock", "error", err)
			}
		}()
	}

	results, err := w.scanner.Scan(ctx)
	if err != nil {
		return errors.Wrap(err, "scan subreddit")
	}

	newComments := 0
	batches := 0
	for _, r := range results {
		newComments += r.New
		if r.BatchID != "" {
			batches++
		}
	}

	w.Log().Infow("Sweep finished",
		"submissions", len(results),
		"new_comments", newComments,
		"batches", batches,
	)

	if batches == 0 {
		return nil
	}

	if _, err := w.index.Recompute(ctx); err != nil {
		// A sweep can produce batches while the window query still comes
		// back empty on a fresh install
		if errors.Is(err, errors.ErrNotFound) {
			return nil
		}
		return errors.Wrap(err, "recompute index")
	}

	return nil
}
