package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Sender delivers a text message to an external chat. Delivery is
// best-effort everywhere it is called; failures are logged by the caller
// and never bubble up to the request that triggered them.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// TelegramSender sends messages through the Telegram Bot API.
type TelegramSender struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewTelegramSender(token string) *TelegramSender {
	return &TelegramSender{
		token:   token,
		baseURL: "https://api.telegram.org",
		client:  http.DefaultClient,
	}
}

func (t *TelegramSender) SendText(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
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
		return fmt.Errorf("telegram sendMessage returned %d", resp.StatusCode)
	}

	return nil
}
