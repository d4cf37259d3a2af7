package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"degenindex/internal/domain/classification"
	indexsvc "degenindex/internal/services/index"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

const (
	defaultSummaryLimit = 20
	maxSummaryLimit     = 100
)

// IndexReader serves index readings to the HTTP API
type IndexReader interface {
	Overview(ctx context.Context) (*indexsvc.Overview, error)
}

// SummaryReader lists recent batch summaries
type SummaryReader interface {
	RecentSummaries(ctx context.Context, since time.Time, limit int) ([]classification.BatchSummary, error)
}

// Handler serves the read-side JSON API
type Handler struct {
	index     IndexReader
	summaries SummaryReader
	window    time.Duration
	log       *logger.Logger
}

// NewHandler creates the API handler. window bounds the summaries lookback.
func NewHandler(index IndexReader, summaries SummaryReader, window time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		index:     index,
		summaries: summaries,
		window:    window,
		log:       log,
	}
}

// HandleIndex returns the latest index reading with its window context
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	overview, err := h.index.Overview(r.Context())
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no index readings yet")
			return
		}
		h.log.Errorw("Failed to load index overview", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// HandleSummaries returns batch summaries from the current window,
// newest first. Supports ?limit=, capped at 100.
func (h *Handler) HandleSummaries(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultSummaryLimit, maxSummaryLimit)
	since := time.Now().UTC().Add(-h.window)

	summaries, err := h.summaries.RecentSummaries(r.Context(), since, limit)
	if err != nil {
		h.log.Errorw("Failed to load summaries", "error", err, "limit", limit)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if summaries == nil {
		summaries = []classification.BatchSummary{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summaries": summaries,
		"count":     len(summaries),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func queryLimit(r *http.Request, defaultLimit, maxLimit int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
