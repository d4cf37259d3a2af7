package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"degenindex/pkg/errors"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Reddit        RedditConfig
	AI            AIConfig
	ClickHouse    ClickHouseConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Telegram      TelegramConfig
	Scanner       ScannerConfig
	Index         IndexConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"degen-index"`
	Version  string `envconfig:"APP_VERSION" default:"0.1.0"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type HTTPConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"8080"`
}

// RedditConfig holds credentials for a script-type Reddit API app.
// Credentials are not marked required so the CLI can report all missing
// variables at once with usage guidance instead of failing on the first.
type RedditConfig struct {
	ClientID          string `envconfig:"REDDIT_CLIENT_ID"`
	ClientSecret      string `envconfig:"REDDIT_CLIENT_SECRET"`
	UserAgent         string `envconfig:"REDDIT_USER_AGENT" default:"DegenIndexDemo/0.1"`
	BaseURL           string `envconfig:"REDDIT_BASE_URL" default:"https://oauth.reddit.com"`
	TokenURL          string `envconfig:"REDDIT_TOKEN_URL" default:"https://www.reddit.com/api/v1/access_token"`
	RequestsPerMinute int    `envconfig:"REDDIT_REQUESTS_PER_MINUTE" default:"60"`
}

// MissingCredentials returns the names of unset credential variables
func (c RedditConfig) MissingCredentials() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	return missing
}

// Validate checks that credentials required for API access are present
func (c RedditConfig) Validate() error {
	if missing := c.MissingCredentials(); len(missing) > 0 {
		return errors.Wrapf(errors.ErrMissingCredentials, "%s", strings.Join(missing, ", "))
	}
	return nil
}

type AIConfig struct {
	// Provider selects the classifier implementation: heuristic or openai
	Provider       string        `envconfig:"CLASSIFIER_PROVIDER" default:"heuristic"`
	OpenAIKey      string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel    string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	RequestTimeout time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"30s"`
}

type ClickHouseConfig struct {
	Host     string `envconfig:"CLICKHOUSE_HOST" default:"localhost"`
	Port     int    `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	User     string `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password string `envconfig:"CLICKHOUSE_PASSWORD"`
	Database string `envconfig:"CLICKHOUSE_DB" default:"degenindex"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Database string `envconfig:"POSTGRES_DB" default:"degenindex"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"25"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"degen-index"`
}

// TelegramConfig is optional: an empty token disables notifications
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

// ScannerConfig drives the periodic subreddit scan worker
type ScannerConfig struct {
	Enabled         bool          `envconfig:"SCANNER_ENABLED" default:"true"`
	Subreddit       string        `envconfig:"SCANNER_SUBREDDIT" default:"wallstreetbets"`
	Interval        time.Duration `envconfig:"SCANNER_INTERVAL" default:"5m"`
	SubmissionLimit int           `envconfig:"SCANNER_SUBMISSION_LIMIT" default:"10"`
	CommentLimit    int           `envconfig:"SCANNER_COMMENT_LIMIT" default:"100"`
	SeenTTL         time.Duration `envconfig:"SCANNER_SEEN_TTL" default:"48h"`
}

// IndexConfig controls the composite degen index computation
type IndexConfig struct {
	Window time.Duration `envconfig:"INDEX_WINDOW" default:"24h"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	Provider    string `envconfig:"ERROR_TRACKING_PROVIDER" default:"sentry"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}

// Validate checks cross-field requirements for running the full service
func (c *Config) Validate() error {
	if c.Scanner.Enabled {
		if err := c.Reddit.Validate(); err != nil {
			return err
		}
	}
	if c.AI.Provider == "openai" && c.AI.OpenAIKey == "" {
		return errors.Wrap(errors.ErrInvalidInput, "CLASSIFIER_PROVIDER=openai requires OPENAI_API_KEY")
	}
	return nil
}
