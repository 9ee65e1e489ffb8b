package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers reports and alert digests to one chat through
// the Telegram Bot API, and can long-poll the same bot for commands.
type TelegramNotifier struct {
	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegramNotifier creates a notifier for the given bot and chat. A
// non-empty proxyURL routes all API traffic through that proxy.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

func (t *TelegramNotifier) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", telegramAPIBase, t.botToken, name)
}

// Send posts one message to the configured chat. The formatters in this
// package produce Telegram-flavored HTML, so messages go out with HTML
// parse mode.
func (t *TelegramNotifier) Send(text string) error {
	body, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	resp, err := t.client.Post(t.method("sendMessage"), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// SendWithRetry retries Send with exponential backoff, giving up when the
// context is cancelled. Reports are periodic, so a message that cannot be
// delivered within the retry budget is dropped, not queued.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = t.Send(text)
		if lastErr == nil {
			return nil
		}
		backoff := time.Duration(1<<uint(attempt)) * time.Second
		log.Printf("[WARN] telegram delivery attempt %d/%d failed: %v (next try in %v)",
			attempt+1, maxRetries+1, lastErr, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("telegram delivery failed after %d attempts: %w", maxRetries+1, lastErr)
}
