package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_FindsTickers(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	f := ex.Extract("nvda to the moon, also watching tsla here")

	assert.Equal(t, []string{"NVDA", "TSLA"}, f.Tickers)
	assert.Equal(t, 1, f.BullishCount) // moon
}

func TestExtract_TickerSubstringContainment(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	// No word-boundary check: GOOGL matches inside GOOGLE
	f := ex.Extract("GOOGLE announced earnings today")

	assert.Equal(t, []string{"GOOGL"}, f.Tickers)
}

func TestExtract_CountsDistinctEntries(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	// Repeating one word does not inflate the count
	f := ex.Extract("puts puts puts everywhere")

	assert.Equal(t, 1, f.BearishCount)
	assert.Equal(t, 1, f.TradeCount) // "puts" is also a trade word
	assert.Equal(t, 0, f.BullishCount)
}

func TestExtract_OverlappingVocabularies(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	// "calls" is both a bullish word and a trade word
	f := ex.Extract("loaded up on calls")

	assert.Equal(t, 1, f.BullishCount)
	assert.Equal(t, 1, f.TradeCount)
}

func TestExtract_MultiWordPhrases(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	f := ex.Extract("my wife's boyfriend drove me to wendy's")

	assert.Equal(t, 2, f.MemeCount)
}

func TestExtract_CaseInsensitiveKeywords(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	f := ex.Extract("HOLDING MY TENDIES UNTIL FRIDAY")

	assert.Equal(t, 1, f.TradeCount)   // holding
	assert.Equal(t, 1, f.BullishCount) // tendies
}

func TestExtract_EmptyBody(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	f := ex.Extract("")

	assert.NotNil(t, f.Tickers)
	assert.Empty(t, f.Tickers)
	assert.Zero(t, f.BullishCount)
	assert.Zero(t, f.BearishCount)
	assert.Zero(t, f.TradeCount)
	assert.Zero(t, f.MemeCount)
}
