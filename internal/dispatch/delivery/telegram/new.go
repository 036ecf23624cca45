package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/metrics"
	pkgLog "dispatch-bot/pkg/log"
	pkgTelegram "dispatch-bot/pkg/telegram"
)

// DefaultRedeliveryTTL is how long a processed update_id is remembered.
const DefaultRedeliveryTTL = 10 * time.Minute

const maxRememberedUpdates = 10000

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Drain waits for updates still being processed, or for ctx to end.
	Drain(ctx context.Context) error
}

// Options tunes the handler. Zero values select the defaults.
type Options struct {
	RedeliveryTTL time.Duration
	Metrics       metrics.Recorder
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc dispatch.UseCase, bot *pkgTelegram.Bot, opts Options) Handler {
	ttl := opts.RedeliveryTTL
	if ttl <= 0 {
		ttl = DefaultRedeliveryTTL
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.NewNop()
	}

	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		self:    bot.Self(),
		seen:    expirable.NewLRU[int, struct{}](maxRememberedUpdates, nil, ttl),
		metrics: rec,
	}
}
