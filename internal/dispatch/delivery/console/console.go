package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/model"
	pkgLog "dispatch-bot/pkg/log"
)

// ChannelID identifies activities delivered by this transport.
const ChannelID = "console"

var (
	botAccount  = model.ChannelAccount{ID: "bot", Name: "Dispatch"}
	userAccount = model.ChannelAccount{ID: "user", Name: "User"}
)

// Console runs a conversation over a line oriented reader and writer.
type Console struct {
	l              pkgLog.Logger
	uc             dispatch.UseCase
	in             io.Reader
	out            io.Writer
	user           model.ChannelAccount
	conversationID string
}

// New creates a console transport. An empty userName keeps the default "User".
func New(l pkgLog.Logger, uc dispatch.UseCase, in io.Reader, out io.Writer, userName string) *Console {
	user := userAccount
	if userName != "" {
		user.Name = userName
	}
	return &Console{
		l:              l,
		uc:             uc,
		in:             in,
		out:            out,
		user:           user,
		conversationID: uuid.NewString(),
	}
}

type turn struct {
	activity model.Activity
	out      io.Writer
}

func (t *turn) Activity() model.Activity { return t.activity }

func (t *turn) SendActivity(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(t.out, "%s> %s\n", botAccount.Name, text)
	return err
}

func (c *Console) newActivity(typ model.ActivityType) model.Activity {
	return model.Activity{
		ID:             uuid.NewString(),
		Type:           typ,
		ChannelID:      ChannelID,
		ConversationID: c.conversationID,
		From:           c.user,
		Recipient:      botAccount,
	}
}

// Run greets the user, then dispatches every non-empty input line until EOF,
// "exit"/"quit" or ctx cancellation. Turn errors are printed and the loop continues.
func (c *Console) Run(ctx context.Context) error {
	joined := c.newActivity(model.ActivityTypeMembersAdded)
	joined.MembersAdded = []model.ChannelAccount{c.user, botAccount}
	if err := c.uc.HandleMembersAdded(ctx, &turn{activity: joined, out: c.out}); err != nil {
		return fmt.Errorf("console: greeting failed: %w", err)
	}

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		activity := c.newActivity(model.ActivityTypeMessage)
		activity.Text = line

		turnCtx := pkgLog.WithTraceID(ctx, activity.ID)
		if err := c.uc.HandleMessage(turnCtx, &turn{activity: activity, out: c.out}); err != nil {
			c.l.Errorf(turnCtx, "console: turn failed: %v", err)
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}
