package telegram

import (
	"context"
	"strconv"
	"time"

	"dispatch-bot/internal/metrics"
	"dispatch-bot/internal/model"
	pkgTelegram "dispatch-bot/pkg/telegram"
)

// ChannelID identifies activities delivered by this transport.
const ChannelID = "telegram"

type turn struct {
	bot      *pkgTelegram.Bot
	chatID   int64
	activity model.Activity
	metrics  metrics.Recorder
}

func (t *turn) Activity() model.Activity { return t.activity }

func (t *turn) SendActivity(ctx context.Context, text string) error {
	start := time.Now()
	err := t.bot.SendMessageContext(ctx, t.chatID, text)
	t.metrics.RecordCall(metrics.CollaboratorTransport, ChannelID, time.Since(start), err)
	return err
}

func account(u *pkgTelegram.User) model.ChannelAccount {
	if u == nil {
		return model.ChannelAccount{}
	}
	return model.ChannelAccount{
		ID:   strconv.FormatInt(u.ID, 10),
		Name: pkgTelegram.DisplayName(*u),
	}
}

// newActivity builds the activity of msg without type specific fields.
func (h *handler) newActivity(msg *pkgTelegram.Message) model.Activity {
	return model.Activity{
		ID:             strconv.Itoa(msg.MessageID),
		ChannelID:      ChannelID,
		ConversationID: strconv.FormatInt(msg.Chat.ID, 10),
		Text:           msg.Text,
		From:           account(msg.From),
		Recipient:      account(&h.self),
	}
}
