// Package notifier delivers report notifications to a chat channel. It is a
// fire-and-forget sink: the caller decides what to do with a returned error,
// and in this service that is logging it and moving on. Delivery never
// participates in the write path.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier sends a fully-rendered text payload somewhere.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Telegram posts messages through the Bot API sendMessage method.
type Telegram struct {
	token  string
	chatID string
	client *http.Client
	base   string
}

// NewTelegram builds a notifier for the given bot token and chat id.
func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 10 * time.Second},
		base:   "https://api.telegram.org",
	}
}

func (t *Telegram) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.base, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: unexpected status %d", resp.StatusCode)
	}
	return nil
}
