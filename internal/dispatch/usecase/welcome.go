package usecase

import (
	"context"
	"fmt"

	"dispatch-bot/internal/dispatch"
)

// HandleMembersAdded greets each added member other than the bot. Repeated
// events are greeted again.
func (uc *implUseCase) HandleMembersAdded(ctx context.Context, turn dispatch.Turn) error {
	activity := turn.Activity()
	for _, member := range activity.MembersAdded {
		if member.ID == activity.Recipient.ID {
			continue
		}
		uc.l.Infof(ctx, "%s: Greeting %s in %s", logPrefixHandleMembersAdded, member.ID, activity.ConversationID)
		if err := turn.SendActivity(ctx, fmt.Sprintf(msgWelcome, member.Name)); err != nil {
			return err
		}
	}
	return nil
}
