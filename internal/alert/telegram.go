package alert

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/logger"
)

// Notifier delivers text to an outbound channel
//
//go:generate mockgen -source=telegram.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// Configured reports whether the channel has the credentials it needs
	Configured() bool
	// Notify delivers text
	Notify(ctx context.Context, text string) error
}

// TelegramConfig configures the Telegram Bot API channel
type TelegramConfig struct {
	APIURL   string
	BotToken string
	ChatID   string
	// MaxElapsed bounds retries of 429 and 5xx answers
	MaxElapsed time.Duration
}

type telegramNotifier struct {
	cfg  TelegramConfig
	http adapter.HTTPClient
	json adapter.JSON
}

// NewTelegramNotifier creates a notifier posting to sendMessage
func NewTelegramNotifier(cfg TelegramConfig, httpClient adapter.HTTPClient, json adapter.JSON) Notifier {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.telegram.org"
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = 30 * time.Second
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return &telegramNotifier{cfg: cfg, http: httpClient, json: json}
}

func (n *telegramNotifier) Configured() bool {
	return n.cfg.BotToken != "" && n.cfg.ChatID != ""
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

var errNotConfigured = errors.New("telegram channel is not configured")

func (n *telegramNotifier) Notify(ctx context.Context, text string) error {
	if !n.Configured() {
		return errNotConfigured
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.cfg.APIURL, n.cfg.BotToken)
	body := sendMessageRequest{ChatID: n.cfg.ChatID, Text: text, DisableWebPagePreview: true}

	operation := func() error {
		resp, err := n.http.PostJSON(ctx, url, nil, body)
		if err != nil {
			return fmt.Errorf("telegram request failed: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("telegram returned %d", resp.StatusCode)
		}

		var parsed sendMessageResponse
		if err := n.json.Unmarshal(resp.Body, &parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode telegram response (status %d): %w", resp.StatusCode, err))
		}
		if resp.StatusCode != http.StatusOK || !parsed.OK {
			return backoff.Permanent(fmt.Errorf("telegram rejected message (status %d): %s", resp.StatusCode, parsed.Description))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = n.cfg.MaxElapsed

	notify := func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Telegram send failed, retrying", zap.Error(err), zap.Duration("next_retry_in", d))
	}

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
}
