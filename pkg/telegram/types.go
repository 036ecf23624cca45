package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Update represents a Telegram incoming update.
type Update = tgbotapi.Update

// Message represents a Telegram message.
type Message = tgbotapi.Message

// User represents a Telegram user or bot.
type User = tgbotapi.User

// Chat represents a Telegram chat.
type Chat = tgbotapi.Chat

// SecretTokenHeader carries the secret registered with setWebhook on every webhook call.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// DisplayName returns "First Last", falling back to the username.
func DisplayName(u User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.UserName
	}
	return name
}
