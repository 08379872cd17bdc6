// Package telegram implements the outbound side of the messaging
// channel: best-effort text delivery to a chat and the deep link a
// candidate opens to hand their token to the bot.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/infrastructure/config"
)

const defaultSendTimeout = 8 * time.Second

// Client talks to the Telegram Bot API. All sends are fire-and-forget:
// the only failure signal is a false return, never an error value, so a
// flaky provider can never abort a completed state transition.
type Client struct {
	botToken    string
	botUsername string
	baseURL     string
	http        *http.Client
	logger      zerolog.Logger
}

func NewClient(cfg config.TelegramConfig, logger zerolog.Logger) *Client {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Client{
		botToken:    strings.TrimSpace(cfg.BotToken),
		botUsername: strings.TrimPrefix(strings.TrimSpace(cfg.BotUsername), "@"),
		baseURL:     strings.TrimRight(cfg.APIBaseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send posts a text message to a chat and reports 2xx acceptance.
func (c *Client) Send(ctx context.Context, chatID, text string) bool {
	if c.botToken == "" || chatID == "" {
		return false
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return false
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("chat_id", chatID).Msg("telegram send failed")
		return false
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok {
		c.logger.Warn().Int("status", resp.StatusCode).Str("chat_id", chatID).Msg("telegram send rejected")
	}
	return ok
}

// StartLink renders the deep link a candidate opens to pass the token to
// the bot. Reports domain.ErrBotNotConfigured when no bot username is
// set, so callers surface a configuration error instead of a dead link.
func (c *Client) StartLink(token string) (string, error) {
	if c.botUsername == "" {
		return "", domain.ErrBotNotConfigured
	}
	return fmt.Sprintf("https://t.me/%s?start=%s", c.botUsername, token), nil
}
