package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Notifier delivers a text message.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// NoOp drops every message.
type NoOp struct{}

func (NoOp) Send(context.Context, string) error { return nil }

// Telegram sends messages through the Bot API with HTML formatting.
type Telegram struct {
	cfg  Config
	http *http.Client
}

// New returns a Telegram notifier, or NoOp when cfg is incomplete.
func New(cfg Config) Notifier {
	if !cfg.Enabled() {
		return NoOp{}
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Telegram{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.cfg.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := strings.TrimRight(t.cfg.APIURL, "/") + "/bot" + t.cfg.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		// The URL carries the bot token; keep it out of the error.
		return fmt.Errorf("telegram request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram http status %d", resp.StatusCode)
	}
	return nil
}

// Report sends text and logs a failure instead of returning it.
func Report(ctx context.Context, n Notifier, logger *zap.Logger, text string) {
	if err := n.Send(ctx, text); err != nil {
		logger.Warn("Failed to send notification", zap.Error(err))
	}
}
