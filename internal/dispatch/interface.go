package dispatch

import (
	"context"

	"dispatch-bot/internal/model"
)

// Turn is one inbound activity together with the capability to reply to it.
// It is supplied by the messaging transport.
type Turn interface {
	Activity() model.Activity
	SendActivity(ctx context.Context, text string) error
}

// UseCase defines the dispatch logic invoked by the transports.
type UseCase interface {
	// HandleMessage recognizes the turn's text and routes it to exactly one handler.
	HandleMessage(ctx context.Context, turn Turn) error

	// HandleMembersAdded greets every added member except the bot itself.
	HandleMembersAdded(ctx context.Context, turn Turn) error
}
