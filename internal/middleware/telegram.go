package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	pkgResponse "dispatch-bot/pkg/response"
	pkgTelegram "dispatch-bot/pkg/telegram"
)

// TelegramWebhookGuard rejects webhook calls from unknown IPs or without the
// registered secret token, and rate limits each chat.
func (m Middleware) TelegramWebhookGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := m.validateIPAddress(c.ClientIP()); err != nil {
			m.l.Warnf(ctx, "middleware.TelegramWebhookGuard: %v", err)
			pkgResponse.Forbidden(c)
			c.Abort()
			return
		}

		if err := m.validateSecret(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
			m.l.Warnf(ctx, "middleware.TelegramWebhookGuard: %v", err)
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		if m.limiter != nil {
			if err := m.limiter.Allow(m.rateLimitKey(c)); err != nil {
				m.l.Warnf(ctx, "middleware.TelegramWebhookGuard: %v", err)
				pkgResponse.TooManyRequests(c)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// rateLimitKey returns "chat:<id>" when the update carries a chat, else the client IP.
// The body is restored for the handler.
func (m Middleware) rateLimitKey(c *gin.Context) string {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "ip:" + c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var peek struct {
		Message *struct {
			Chat *struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	}
	if json.Unmarshal(body, &peek) == nil && peek.Message != nil && peek.Message.Chat != nil {
		return "chat:" + strconv.FormatInt(peek.Message.Chat.ID, 10)
	}
	return "ip:" + c.ClientIP()
}
