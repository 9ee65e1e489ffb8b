package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// CommandHandler processes one chat command and returns the reply text, or
// "" when the command produces its output through another path.
type CommandHandler func(command string) string

const (
	pollTimeout   = 30 * time.Second
	pollRetryWait = 5 * time.Second
)

type chatMessage struct {
	Text string `json:"text"`
}

type chatUpdate struct {
	UpdateID int          `json:"update_id"`
	Message  *chatMessage `json:"message"`
}

// StartPolling long-polls the bot for chat messages and dispatches slash
// commands to the handler. Ordinary chatter is ignored; the handler decides
// what each command means. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	// Separate client: the poll request deliberately hangs open for
	// pollTimeout, longer than the send client allows.
	client := &http.Client{Timeout: pollTimeout + 5*time.Second}
	offset := 0

	for ctx.Err() == nil {
		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("[WARN] telegram poll: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(pollRetryWait):
			}
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			cmd, ok := parseCommand(u)
			if !ok {
				continue
			}
			log.Printf("[INFO] chat command: %s", cmd)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] reply to %s: %v", cmd, err)
				}
			}
		}
	}
	log.Println("[INFO] telegram polling stopped")
}

func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]chatUpdate, error) {
	reqURL := fmt.Sprintf("%s?offset=%d&timeout=%d",
		t.method("getUpdates"), offset, int(pollTimeout.Seconds()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build getUpdates request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read getUpdates response: %w", err)
	}

	var parsed struct {
		OK     bool         `json:"ok"`
		Result []chatUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode getUpdates response: %w", err)
	}
	if !parsed.OK {
		return nil, errors.New("getUpdates returned ok=false")
	}
	return parsed.Result, nil
}

// parseCommand extracts a normalized slash command from an update. Trailing
// arguments are discarded, and the bot-mention suffix Telegram appends in
// group chats ("/run@SomeBot") is stripped so the handler sees the bare
// command.
func parseCommand(u chatUpdate) (string, bool) {
	if u.Message == nil {
		return "", false
	}
	text := strings.TrimSpace(u.Message.Text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, true
}
