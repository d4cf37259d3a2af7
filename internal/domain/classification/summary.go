package classification

import (
	"sort"

	"degenindex/pkg/errors"
)

// Summarize folds a batch of records into a Summary. The result is
// order-independent: permuting the input changes nothing.
//
// Directions other than bullish and bearish, including the reserved
// mixed value, land in the neutral bucket, so the three counts always
// sum to Count.
func Summarize(records []Record) (*Summary, error) {
	if len(records) == 0 {
		return nil, errors.ErrEmptyBatch
	}

	seen := make(map[string]struct{})
	unique := make([]string, 0)
	var bullish, bearish, neutral int
	var degenTotal int

	for _, rec := range records {
		for _, t := range rec.Tickers {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			unique = append(unique, t)
		}

		switch rec.Sentiment.TradeDirection {
		case DirectionBullish:
			bullish++
		case DirectionBearish:
			bearish++
		default:
			neutral++
		}

		degenTotal += rec.DegenScore
	}

	sort.Strings(unique)

	return &Summary{
		Count:             len(records),
		UniqueTickers:     unique,
		BullishCount:      bullish,
		BearishCount:      bearish,
		NeutralCount:      neutral,
		AverageDegenScore: float64(degenTotal) / float64(len(records)),
	}, nil
}
