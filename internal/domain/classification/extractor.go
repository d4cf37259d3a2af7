package classification

import "strings"

// Features holds the raw vocabulary match counts for one comment body.
// Keyword counts are distinct vocabulary entries matched, not total
// occurrences: "puts puts puts" still counts bearish once.
type Features struct {
	Tickers      []string
	BullishCount int
	BearishCount int
	TradeCount   int
	MemeCount    int
}

// Extractor scans comment bodies for vocabulary matches
type Extractor struct {
	vocab Vocabulary
}

// NewExtractor creates an extractor over the given vocabulary
func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract scans body and returns match counts.
// Ticker matching is substring containment on the uppercased body with no
// word-boundary check, so "GOOGLE" also matches GOOGL. Keyword matching
// runs on the lowercased body the same way.
func (e *Extractor) Extract(body string) Features {
	upper := strings.ToUpper(body)
	lower := strings.ToLower(body)

	tickers := make([]string, 0)
	for _, t := range e.vocab.Tickers {
		if strings.Contains(upper, strings.ToUpper(t)) {
			tickers = append(tickers, t)
		}
	}

	return Features{
		Tickers:      tickers,
		BullishCount: countMatches(lower, e.vocab.BullishWords),
		BearishCount: countMatches(lower, e.vocab.BearishWords),
		TradeCount:   countMatches(lower, e.vocab.TradeWords),
		MemeCount:    countMatches(lower, e.vocab.MemeWords),
	}
}

func countMatches(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			n++
		}
	}
	return n
}
