package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"degenindex/internal/adapters/config"
	"degenindex/internal/events"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// Notifier pushes batch digests to a configured chat. One-way only,
// the bot never polls for updates.
type Notifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewNotifier creates a notifier. Callers should skip construction when
// no token is configured.
func NewNotifier(cfg config.TelegramConfig, log *logger.Logger) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, errors.Wrap(errors.ErrMissingCredentials, "telegram bot token is required")
	}
	if cfg.ChatID == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "telegram chat id is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}

	log.Infof("Authorized on account %s", api.Self.UserName)

	// Telegram allows roughly one message per second to a single chat
	limiter := rate.NewLimiter(rate.Every(time.Second), 3)

	return &Notifier{
		api:     api,
		chatID:  cfg.ChatID,
		limiter: limiter,
		log:     log.With("component", "telegram_notifier"),
	}, nil
}

// NotifySummary sends a digest for one classified batch
func (n *Notifier) NotifySummary(ctx context.Context, event events.SummaryEvent) error {
	return n.send(ctx, formatSummary(event))
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter wait failed")
	}

	start := time.Now()

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := n.api.Send(msg)
	if err != nil {
		n.log.Errorw("Failed to send digest",
			"chat_id", n.chatID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return errors.Wrap(err, "failed to send message")
	}

	n.log.Debugw("Digest sent",
		"chat_id", n.chatID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

func formatSummary(event events.SummaryEvent) string {
	s := event.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "*r/%s batch digest*\n", event.Subreddit)
	fmt.Fprintf(&b, "Submission: `%s`\n", event.SubmissionID)
	fmt.Fprintf(&b, "Comments: %d\n", s.Count)
	fmt.Fprintf(&b, "Bullish %d / Bearish %d / Neutral %d\n", s.BullishCount, s.BearishCount, s.NeutralCount)
	fmt.Fprintf(&b, "Avg degen score: %.1f\n", s.AverageDegenScore)

	if len(s.UniqueTickers) > 0 {
		fmt.Fprintf(&b, "Tickers: %s", strings.Join(s.UniqueTickers, ", "))
	} else {
		b.WriteString("Tickers: none")
	}

	return b.String()
}
