package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultTimeout is the HTTP timeout for Bot API calls.
const DefaultTimeout = 30 * time.Second

// Bot is the Telegram Bot API client.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot creates a Bot against the public Bot API. It calls getMe to learn the bot's own identity.
func NewBot(token string) (*Bot, error) {
	return NewBotWithEndpoint(token, tgbotapi.APIEndpoint, &http.Client{Timeout: DefaultTimeout})
}

// NewBotWithEndpoint creates a Bot against a custom endpoint
// (format "https://host/bot%s/%s"), used for local Bot API servers and tests.
func NewBotWithEndpoint(token, endpoint string, httpClient *http.Client) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return &Bot{api: api}, nil
}

// Self returns the bot's own account as reported by getMe.
func (b *Bot) Self() User {
	return b.api.Self
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secretToken is
// echoed back by Telegram in SecretTokenHeader on every webhook request.
func (b *Bot) SetWebhook(webhookURL, secretToken string) error {
	params := tgbotapi.Params{"url": webhookURL}
	params.AddNonEmpty("secret_token", secretToken)

	if _, err := b.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("telegram setWebhook failed: %w", err)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageContext sends text unless ctx is already done. The underlying
// client has no per-request context, so a request in flight is not cancelled.
func (b *Bot) SendMessageContext(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("telegram sendMessage skipped: %w", err)
	}
	return b.SendMessage(chatID, text)
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}
