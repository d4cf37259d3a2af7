package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degenindex/pkg/errors"
)

func TestValidate_ScannerRequiresRedditCredentials(t *testing.T) {
	cfg := &Config{
		Scanner: ScannerConfig{Enabled: true},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingCredentials))
	assert.Contains(t, err.Error(), "REDDIT_CLIENT_ID")
	assert.Contains(t, err.Error(), "REDDIT_CLIENT_SECRET")
}

func TestValidate_DisabledScannerSkipsRedditCheck(t *testing.T) {
	cfg := &Config{
		Scanner: ScannerConfig{Enabled: false},
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_OpenAIRequiresKey(t *testing.T) {
	cfg := &Config{
		AI: AIConfig{Provider: "openai"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	cfg.AI.OpenAIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  RedditConfig
		want []string
	}{
		{
			name: "both missing",
			cfg:  RedditConfig{},
			want: []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET"},
		},
		{
			name: "secret missing",
			cfg:  RedditConfig{ClientID: "abc"},
			want: []string{"REDDIT_CLIENT_SECRET"},
		},
		{
			name: "complete",
			cfg:  RedditConfig{ClientID: "abc", ClientSecret: "xyz"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MissingCredentials())
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "secret",
		Database: "degenindex",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=degenindex sslmode=require",
		cfg.DSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}

func TestTelegramEnabled(t *testing.T) {
	assert.False(t, TelegramConfig{}.Enabled())
	assert.False(t, TelegramConfig{BotToken: "123:abc"}.Enabled())
	assert.False(t, TelegramConfig{ChatID: 42}.Enabled())
	assert.True(t, TelegramConfig{BotToken: "123:abc", ChatID: 42}.Enabled())
}
