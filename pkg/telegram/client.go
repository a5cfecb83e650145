package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Client represents a Telegram Bot API client. Notifications are best-effort:
// callers log send failures and carry on.
type Client struct {
	BaseURL  string
	BotToken string
	MockAPI  bool
	client   *http.Client
}

// sendMessageRequest is the Bot API sendMessage payload
type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// sendMessageResponse is the Bot API envelope
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NewClient creates a new Telegram Bot API client
func NewClient(baseURL, botToken string, mockAPI bool) *Client {
	return &Client{
		BaseURL:  baseURL,
		BotToken: botToken,
		MockAPI:  mockAPI,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage sends a plain-text message to a Telegram user
func (c *Client) SendMessage(telegramUserID, text string) error {
	if c.MockAPI {
		return c.mockSendMessage(telegramUserID, text)
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: telegramUserID, Text: text})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.BaseURL, c.BotToken)
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}
	return nil
}

// mockSendMessage logs the message instead of calling the Bot API
func (c *Client) mockSendMessage(telegramUserID, text string) error {
	log.Printf("[telegram mock] to=%s message=%q", telegramUserID, text)
	return nil
}
