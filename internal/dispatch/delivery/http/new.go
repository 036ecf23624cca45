package http

import (
	"github.com/gin-gonic/gin"

	"dispatch-bot/internal/dispatch"
	pkgLog "dispatch-bot/pkg/log"
)

// Default identities of the simulated conversation.
const (
	ChannelID       = "test"
	BotID           = "dispatch-bot"
	BotName         = "Dispatch"
	DefaultUserID   = "test-user"
	DefaultUserName = "Tester"
)

// Handler is the interface for the test handler
type Handler interface {
	HandleTestMessage(c *gin.Context)
	HandleTestJoin(c *gin.Context)
	HandleHealthCheck(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc dispatch.UseCase
}

// New creates a new test handler. Replies are returned in the HTTP response
// instead of being sent to a messaging channel.
func New(l pkgLog.Logger, uc dispatch.UseCase) Handler {
	return &handler{l: l, uc: uc}
}
