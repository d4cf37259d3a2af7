package classification

import (
	"time"

	"degenindex/internal/domain/comment"
)

// Record is the structured classification of a single comment.
// JSON field names are the wire contract shared with downstream consumers
// and must not change.
type Record struct {
	IsTradePlan  bool      `json:"is_trade_plan"`
	IsMeme       bool      `json:"is_meme"`
	IsCommentary bool      `json:"is_commentary"`
	Tickers      []string  `json:"tickers"`
	PrimaryMood  Mood      `json:"primary_mood"`
	TopicType    TopicType `json:"topic_type"`
	Sentiment    Sentiment `json:"sentiment"`
	DegenScore   int       `json:"degen_score"`
	MemeScore    int       `json:"meme_score"`
}

// Sentiment groups the direction-related fields of a Record
type Sentiment struct {
	TradeDirection      TradeDirection `json:"trade_direction"`
	SentimentConfidence int            `json:"sentiment_confidence"`
	IsSarcastic         bool           `json:"is_sarcastic"`
}

// Mood is the dominant emotional tone of a comment
type Mood string

const (
	MoodEuphoria  Mood = "euphoria"
	MoodFear      Mood = "fear"
	MoodDespair   Mood = "despair"
	MoodCope      Mood = "cope"
	MoodSmug      Mood = "smug"
	MoodConfusion Mood = "confusion"
	MoodNeutral   Mood = "neutral"
)

// AllMoods returns every mood in declaration order
func AllMoods() []Mood {
	return []Mood{
		MoodEuphoria,
		MoodFear,
		MoodDespair,
		MoodCope,
		MoodSmug,
		MoodConfusion,
		MoodNeutral,
	}
}

// Valid checks if the mood is a known value
func (m Mood) Valid() bool {
	switch m {
	case MoodEuphoria, MoodFear, MoodDespair, MoodCope, MoodSmug, MoodConfusion, MoodNeutral:
		return true
	}
	return false
}

// String returns string representation
func (m Mood) String() string {
	return string(m)
}

// TradeDirection is the inferred positioning of a comment.
// DirectionMixed is reserved for classifiers that can detect genuinely
// two-sided comments; the rule-based engine never emits it.
type TradeDirection string

const (
	DirectionBullish TradeDirection = "bullish"
	DirectionBearish TradeDirection = "bearish"
	DirectionMixed   TradeDirection = "mixed"
	DirectionNeutral TradeDirection = "neutral"
)

// Valid checks if the direction is a known value
func (d TradeDirection) Valid() bool {
	switch d {
	case DirectionBullish, DirectionBearish, DirectionMixed, DirectionNeutral:
		return true
	}
	return false
}

// String returns string representation
func (d TradeDirection) String() string {
	return string(d)
}

// TopicType describes what a comment is about, derived from ticker count
type TopicType string

const (
	TopicSingleStock TopicType = "single_stock"
	TopicIndexMacro  TopicType = "index_macro"
	TopicOther       TopicType = "other"
)

// Valid checks if the topic type is a known value
func (t TopicType) Valid() bool {
	switch t {
	case TopicSingleStock, TopicIndexMacro, TopicOther:
		return true
	}
	return false
}

// String returns string representation
func (t TopicType) String() string {
	return string(t)
}

// Summary aggregates a batch of records
type Summary struct {
	Count             int      `json:"count"`
	UniqueTickers     []string `json:"unique_tickers"`
	BullishCount      int      `json:"bullish_count"`
	BearishCount      int      `json:"bearish_count"`
	NeutralCount      int      `json:"neutral_count"`
	AverageDegenScore float64  `json:"average_degen_score"`
}

// ClassifiedComment is the archive row stored per classified comment.
// Classification fields are flattened for columnar storage.
type ClassifiedComment struct {
	CommentID           string    `ch:"comment_id"`
	SubmissionID        string    `ch:"submission_id"`
	Subreddit           string    `ch:"subreddit"`
	Author              string    `ch:"author"`
	Body                string    `ch:"body"`
	CommentScore        int32     `ch:"comment_score"`
	CommentedAt         time.Time `ch:"commented_at"`
	IsTradePlan         bool      `ch:"is_trade_plan"`
	IsMeme              bool      `ch:"is_meme"`
	IsCommentary        bool      `ch:"is_commentary"`
	Tickers             []string  `ch:"tickers"`
	PrimaryMood         string    `ch:"primary_mood"`
	TopicType           string    `ch:"topic_type"`
	TradeDirection      string    `ch:"trade_direction"`
	SentimentConfidence uint8     `ch:"sentiment_confidence"`
	IsSarcastic         bool      `ch:"is_sarcastic"`
	DegenScore          uint8     `ch:"degen_score"`
	MemeScore           uint8     `ch:"meme_score"`
	Classifier          string    `ch:"classifier"`
	ClassifiedAt        time.Time `ch:"classified_at"`
}

// NewClassifiedComment flattens a comment and its record into an archive row
func NewClassifiedComment(c comment.Comment, rec Record, classifier string, at time.Time) ClassifiedComment {
	return ClassifiedComment{
		CommentID:           c.ID,
		SubmissionID:        c.SubmissionID,
		Subreddit:           c.Subreddit,
		Author:              c.AuthorName(),
		Body:                c.Body,
		CommentScore:        int32(c.Score),
		CommentedAt:         c.CreatedAt,
		IsTradePlan:         rec.IsTradePlan,
		IsMeme:              rec.IsMeme,
		IsCommentary:        rec.IsCommentary,
		Tickers:             rec.Tickers,
		PrimaryMood:         rec.PrimaryMood.String(),
		TopicType:           rec.TopicType.String(),
		TradeDirection:      rec.Sentiment.TradeDirection.String(),
		SentimentConfidence: uint8(rec.Sentiment.SentimentConfidence),
		IsSarcastic:         rec.Sentiment.IsSarcastic,
		DegenScore:          uint8(rec.DegenScore),
		MemeScore:           uint8(rec.MemeScore),
		Classifier:          classifier,
		ClassifiedAt:        at,
	}
}

// BatchSummary is a persisted Summary tied to the submission it came from
type BatchSummary struct {
	ID                string    `db:"id" json:"id"`
	SubmissionID      string    `db:"submission_id" json:"submission_id"`
	Subreddit         string    `db:"subreddit" json:"subreddit"`
	Count             int       `db:"comment_count" json:"comment_count"`
	UniqueTickers     []string  `db:"unique_tickers" json:"unique_tickers"`
	BullishCount      int       `db:"bullish_count" json:"bullish_count"`
	BearishCount      int       `db:"bearish_count" json:"bearish_count"`
	NeutralCount      int       `db:"neutral_count" json:"neutral_count"`
	AverageDegenScore float64   `db:"average_degen_score" json:"average_degen_score"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
