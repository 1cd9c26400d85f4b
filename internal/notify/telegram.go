package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const telegramAPI = "https://api.telegram.org"

// TelegramDeliverer posts notifications to a chat through the Bot API.
type TelegramDeliverer struct {
	baseURL  string
	botToken string
	chatID   string
	client   *http.Client
}

type TelegramOption func(*TelegramDeliverer)

func WithTelegramBaseURL(u string) TelegramOption {
	return func(t *TelegramDeliverer) {
		t.baseURL = strings.TrimRight(u, "/")
	}
}

func WithHTTPClient(c *http.Client) TelegramOption {
	return func(t *TelegramDeliverer) {
		if c != nil {
			t.client = c
		}
	}
}

func NewTelegramDeliverer(botToken, chatID string, opts ...TelegramOption) *TelegramDeliverer {
	t := &TelegramDeliverer{
		baseURL:  telegramAPI,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type telegramSendRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (t *TelegramDeliverer) Send(ctx context.Context, n Notification) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	body, err := json.Marshal(telegramSendRequest{
		ChatID: t.chatID,
		Text:   n.Title + "\n" + n.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// The request URL carries the bot token; keep it out of the error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}
	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}
	return nil
}
