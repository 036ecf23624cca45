package telegram

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/metrics"
	"dispatch-bot/internal/model"
	pkgLog "dispatch-bot/pkg/log"
	pkgResponse "dispatch-bot/pkg/response"
	pkgTelegram "dispatch-bot/pkg/telegram"
)

type handler struct {
	l       pkgLog.Logger
	uc      dispatch.UseCase
	bot     *pkgTelegram.Bot
	self    pkgTelegram.User
	seen    *expirable.LRU[int, struct{}]
	metrics metrics.Recorder

	inflight sync.WaitGroup
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine, since recognition plus a knowledge base lookup can
// outlast Telegram's webhook timeout.
// @Summary Telegram webhook
// @Description Receives Telegram updates and dispatches them to the bot
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-Telegram-Bot-Api-Secret-Token header string false "Secret registered with setWebhook"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Telegram redelivers updates it did not see acknowledged in time.
	if h.seen.Contains(update.UpdateID) {
		h.metrics.RecordUpdate(ChannelID, "duplicate")
		pkgResponse.OK(c, map[string]string{"status": "duplicate"})
		return
	}
	h.seen.Add(update.UpdateID, struct{}{})

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		h.metrics.RecordUpdate(ChannelID, "ignored")
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	activity, ok := h.toActivity(msg)
	if !ok {
		h.metrics.RecordUpdate(ChannelID, "ignored")
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}
	h.metrics.RecordUpdate(ChannelID, string(activity.Type))

	chatID := msg.Chat.ID

	h.inflight.Go(func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := pkgLog.WithTraceID(context.Background(), uuid.NewString())
		t := &turn{bot: h.bot, chatID: chatID, activity: activity, metrics: h.metrics}
		if err := h.process(bgCtx, t); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background process failed: %v", err)
			// Best-effort error notification to user
			if sendErr := h.bot.SendMessage(chatID, msgProcessingFailed); sendErr != nil {
				h.l.Warnf(bgCtx, "telegram handler: failed to send error message: %v", sendErr)
			}
		}
	})

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *handler) process(ctx context.Context, t *turn) error {
	switch t.activity.Type {
	case model.ActivityTypeMembersAdded:
		return h.uc.HandleMembersAdded(ctx, t)
	default:
		return h.uc.HandleMessage(ctx, t)
	}
}

// toActivity maps a Telegram message onto an activity. New chat members and
// /start in a private chat become membership events; other text becomes a
// message. Anything else is ignored.
func (h *handler) toActivity(msg *pkgTelegram.Message) (model.Activity, bool) {
	activity := h.newActivity(msg)

	switch {
	case len(msg.NewChatMembers) > 0:
		activity.Type = model.ActivityTypeMembersAdded
		activity.Text = ""
		for i := range msg.NewChatMembers {
			activity.MembersAdded = append(activity.MembersAdded, account(&msg.NewChatMembers[i]))
		}
		return activity, true

	case isStartCommand(msg.Text):
		if !msg.Chat.IsPrivate() || msg.From == nil {
			return model.Activity{}, false
		}
		activity.Type = model.ActivityTypeMembersAdded
		activity.Text = ""
		activity.MembersAdded = []model.ChannelAccount{account(msg.From)}
		return activity, true

	case strings.TrimSpace(msg.Text) != "":
		activity.Type = model.ActivityTypeMessage
		return activity, true
	}

	return model.Activity{}, false
}

// isStartCommand matches "/start", "/start payload" and "/start@bot".
func isStartCommand(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd == "/start"
}
