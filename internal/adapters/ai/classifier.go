package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"degenindex/internal/adapters/config"
	"degenindex/internal/domain/classification"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

const systemPrompt = `You are tagging social media comments from retail trading forums.
Classify the comment into JSON with exactly these fields:
{
  "is_trade_plan": false,      // author states a position or intent to trade
  "is_meme": false,            // comment is mostly meme slang
  "is_commentary": true,       // general market commentary
  "tickers": ["SPY"],          // uppercase stock tickers mentioned, [] if none
  "primary_mood": "neutral",   // one of: euphoria, fear, despair, cope, smug, confusion, neutral
  "topic_type": "other",       // one of: single_stock, index_macro, other
  "sentiment": {
    "trade_direction": "neutral",  // one of: bullish, bearish, mixed, neutral
    "sentiment_confidence": 5,     // 1-10
    "is_sarcastic": false
  },
  "degen_score": 3,            // 0-10, how reckless the comment is
  "meme_score": 0              // 0-10, meme slang density
}
Output JSON only, no other text.`

// Compile-time check
var _ classification.Classifier = (*OpenAIClassifier)(nil)

// OpenAIClassifier implements classification.Classifier using the official
// OpenAI Go SDK
type OpenAIClassifier struct {
	client  openai.Client // NewClient returns Client (not *Client)
	model   openai.ChatModel
	timeout time.Duration
	log     *logger.Logger
}

// NewOpenAIClassifier creates a new OpenAI-backed classifier
func NewOpenAIClassifier(cfg config.AIConfig) (*OpenAIClassifier, error) {
	if cfg.OpenAIKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "openai API key is required")
	}

	model := cfg.OpenAIModel
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIKey),
	)

	return &OpenAIClassifier{
		client:  client,
		model:   openai.ChatModel(model),
		timeout: timeout,
		log:     logger.Get().With("component", "openai_classifier", "model", model),
	}, nil
}

// Name returns the classifier name used in archive rows and metrics
func (c *OpenAIClassifier) Name() string {
	return "openai"
}

// Classify sends the comment body to the chat completions API and parses
// the structured response
func (c *OpenAIClassifier) Classify(ctx context.Context, body string) (classification.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(body),
		},
	})
	if err != nil {
		return classification.Record{}, errors.Wrap(err, "openai API call failed")
	}

	if len(resp.Choices) == 0 {
		return classification.Record{}, errors.Wrapf(errors.ErrMalformedResponse, "no choices returned")
	}

	record, err := parseRecord(resp.Choices[0].Message.Content)
	if err != nil {
		return classification.Record{}, err
	}

	c.log.Debugw("Comment classified",
		"body_length", len(body),
		"mood", record.PrimaryMood,
		"tokens_used", resp.Usage.TotalTokens,
	)

	return record, nil
}

// parseRecord parses a model response into a Record. Model output is not
// trusted: scores are clamped back into range and enum fields must be valid.
func parseRecord(content string) (classification.Record, error) {
	var record classification.Record

	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &record); err != nil {
		return classification.Record{}, errors.Wrapf(errors.ErrMalformedResponse, "parse response: %v", err)
	}

	if !record.PrimaryMood.Valid() {
		return classification.Record{}, errors.Wrapf(errors.ErrMalformedResponse, "unknown mood %q", record.PrimaryMood)
	}
	if !record.TopicType.Valid() {
		return classification.Record{}, errors.Wrapf(errors.ErrMalformedResponse, "unknown topic type %q", record.TopicType)
	}
	if !record.Sentiment.TradeDirection.Valid() {
		return classification.Record{}, errors.Wrapf(errors.ErrMalformedResponse, "unknown trade direction %q", record.Sentiment.TradeDirection)
	}

	record.Sentiment.SentimentConfidence = clampInt(record.Sentiment.SentimentConfidence, 1, 10)
	record.DegenScore = clampInt(record.DegenScore, 0, 10)
	record.MemeScore = clampInt(record.MemeScore, 0, 10)

	if record.Tickers == nil {
		record.Tickers = []string{}
	}
	for i, t := range record.Tickers {
		record.Tickers[i] = strings.ToUpper(strings.TrimSpace(t))
	}

	return record, nil
}

// cleanJSONResponse strips markdown fences and surrounding prose from a
// model response
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
