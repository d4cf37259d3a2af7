package classification

import (
	"context"
	"strings"
)

// EngineName is the classifier name recorded for rule-based results
const EngineName = "heuristic"

// Engine is the rule-based Classifier. It is pure except for the single
// mood draw on comments without meme language, and it never returns an
// error: any text, including the empty string, classifies cleanly.
type Engine struct {
	vocab     Vocabulary
	extractor *Extractor
	moods     MoodSource
}

// NewEngine creates the rule-based classifier. A nil MoodSource selects
// the process-wide random source.
func NewEngine(vocab Vocabulary, moods MoodSource) *Engine {
	if moods == nil {
		moods = processSource{}
	}
	return &Engine{
		vocab:     vocab,
		extractor: NewExtractor(vocab),
		moods:     moods,
	}
}

// Name identifies the implementation in archive rows and metrics
func (e *Engine) Name() string {
	return EngineName
}

// Classify applies the fixed rule set to one comment body
func (e *Engine) Classify(_ context.Context, body string) (Record, error) {
	f := e.extractor.Extract(body)

	isTradePlan := f.TradeCount > 0

	direction := DirectionNeutral
	switch {
	case f.BullishCount > f.BearishCount:
		direction = DirectionBullish
	case f.BearishCount > f.BullishCount:
		direction = DirectionBearish
	}

	// Meme language pins the mood to euphoria; otherwise the mood is a
	// uniform draw over the full set, so euphoria can still come up.
	mood := MoodEuphoria
	if f.MemeCount == 0 {
		mood = e.moods.Pick(AllMoods())
	}

	topic := TopicOther
	switch len(f.Tickers) {
	case 0:
	case 1:
		topic = TopicSingleStock
	default:
		topic = TopicIndexMacro
	}

	degen := 3 + f.MemeCount
	if isTradePlan {
		degen += 2
	}

	return Record{
		IsTradePlan:  isTradePlan,
		IsMeme:       f.MemeCount >= 2,
		IsCommentary: !isTradePlan || len(f.Tickers) > 0,
		Tickers:      f.Tickers,
		PrimaryMood:  mood,
		TopicType:    topic,
		Sentiment: Sentiment{
			TradeDirection:      direction,
			SentimentConfidence: clamp(f.BullishCount+f.BearishCount+3, 1, 10),
			// The sarcasm marker is matched on the raw body: "/S" does not count
			IsSarcastic: strings.Contains(body, e.vocab.SarcasmMarker) || f.MemeCount >= 2,
		},
		DegenScore: clamp(degen, 0, 10),
		MemeScore:  clamp(f.MemeCount*3, 0, 10),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
