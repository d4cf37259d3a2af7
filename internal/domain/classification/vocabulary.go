package classification

// Vocabulary is the keyword configuration driving feature extraction.
// All matching is substring-based, so multi-word entries like
// "wife's boyfriend" are legal.
type Vocabulary struct {
	Tickers       []string
	BullishWords  []string
	BearishWords  []string
	TradeWords    []string
	MemeWords     []string
	SarcasmMarker string
}

// DefaultVocabulary returns the stock vocabulary tuned for r/wallstreetbets
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Tickers: []string{
			"SPY", "QQQ", "NVDA", "TSLA", "AAPL",
			"AMD", "AMZN", "META", "GOOGL", "MSFT",
		},
		BullishWords: []string{
			"moon", "calls", "buy", "long", "rocket", "tendies", "print",
		},
		BearishWords: []string{
			"puts", "short", "drill", "crash", "dump", "rug",
		},
		TradeWords: []string{
			"bought", "buying", "sold", "selling", "holding", "position", "calls", "puts",
		},
		MemeWords: []string{
			"lmao", "lol", "ape", "smooth brain", "wife's boyfriend", "wendy's",
		},
		SarcasmMarker: "/s",
	}
}
