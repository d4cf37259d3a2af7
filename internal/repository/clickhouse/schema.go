package clickhouse

// ClassifiedCommentsSchema creates the comment archive table. Ordered by
// the natural comment identity so re-scans of a submission cluster
// together on disk.
const ClassifiedCommentsSchema = `
CREATE TABLE IF NOT EXISTS classified_comments (
	comment_id           String,
	submission_id        String,
	subreddit            LowCardinality(String),
	author               String,
	body                 String,
	comment_score        Int32,
	commented_at         DateTime,
	is_trade_plan        Bool,
	is_meme              Bool,
	is_commentary        Bool,
	tickers              Array(String),
	primary_mood         LowCardinality(String),
	topic_type           LowCardinality(String),
	trade_direction      LowCardinality(String),
	sentiment_confidence UInt8,
	is_sarcastic         Bool,
	degen_score          UInt8,
	meme_score           UInt8,
	classifier           LowCardinality(String),
	classified_at        DateTime
)
ENGINE = MergeTree()
ORDER BY (subreddit, submission_id, comment_id)`
