package ai

import (
	"testing"

	"degenindex/internal/adapters/config"
	"degenindex/internal/domain/classification"
	"degenindex/pkg/errors"
)

func TestNewClassifierDefaultsToHeuristic(t *testing.T) {
	c, err := NewClassifier(config.AIConfig{}, classification.DefaultVocabulary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Name(); got != ProviderHeuristic {
		t.Fatalf("expected heuristic classifier, got %s", got)
	}
}

func TestNewClassifierUnknownProvider(t *testing.T) {
	_, err := NewClassifier(config.AIConfig{Provider: "llama"}, classification.DefaultVocabulary())
	if !errors.Is(err, errors.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestNewClassifierOpenAIRequiresKey(t *testing.T) {
	_, err := NewClassifier(config.AIConfig{Provider: ProviderOpenAI}, classification.DefaultVocabulary())
	if err == nil {
		t.Fatal("expected error when openai key missing")
	}
}

func TestParseRecordStripsFences(t *testing.T) {
	content := "```json\n{\"is_trade_plan\":true,\"is_meme\":false,\"is_commentary\":true," +
		"\"tickers\":[\"spy \"],\"primary_mood\":\"euphoria\",\"topic_type\":\"single_stock\"," +
		"\"sentiment\":{\"trade_direction\":\"bullish\",\"sentiment_confidence\":42,\"is_sarcastic\":false}," +
		"\"degen_score\":15,\"meme_score\":-2}\n```"

	record, err := parseRecord(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Tickers[0] != "SPY" {
		t.Fatalf("expected normalized ticker SPY, got %q", record.Tickers[0])
	}
	if record.Sentiment.SentimentConfidence != 10 {
		t.Fatalf("expected confidence clamped to 10, got %d", record.Sentiment.SentimentConfidence)
	}
	if record.DegenScore != 10 {
		t.Fatalf("expected degen score clamped to 10, got %d", record.DegenScore)
	}
	if record.MemeScore != 0 {
		t.Fatalf("expected meme score clamped to 0, got %d", record.MemeScore)
	}
}

func TestParseRecordExtractsObjectFromProse(t *testing.T) {
	content := `Sure! Here is the classification:
{"is_trade_plan":false,"is_meme":false,"is_commentary":true,"tickers":[],
"primary_mood":"neutral","topic_type":"other",
"sentiment":{"trade_direction":"neutral","sentiment_confidence":3,"is_sarcastic":false},
"degen_score":3,"meme_score":0}
Let me know if you need anything else.`

	record, err := parseRecord(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.PrimaryMood != classification.MoodNeutral {
		t.Fatalf("unexpected mood %s", record.PrimaryMood)
	}
	if record.Tickers == nil {
		t.Fatal("tickers must be non-nil after parsing")
	}
}

func TestParseRecordRejectsUnknownMood(t *testing.T) {
	content := `{"is_trade_plan":false,"is_meme":false,"is_commentary":true,"tickers":[],
"primary_mood":"yolo","topic_type":"other",
"sentiment":{"trade_direction":"neutral","sentiment_confidence":3,"is_sarcastic":false},
"degen_score":3,"meme_score":0}`

	_, err := parseRecord(content)
	if !errors.Is(err, errors.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseRecordRejectsNonJSON(t *testing.T) {
	if _, err := parseRecord("the comment is bullish on SPY"); !errors.Is(err, errors.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}
