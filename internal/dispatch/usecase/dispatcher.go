package usecase

import (
	"context"
	"fmt"
	"time"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/metrics"
)

// HandleMessage recognizes the turn and runs the handler of its top intent.
func (uc *implUseCase) HandleMessage(ctx context.Context, turn dispatch.Turn) error {
	activity := turn.Activity()
	uc.l.Infof(ctx, "%s: Processing message %s from %s in %s", logPrefixHandleMessage, activity.ID, activity.From.ID, activity.ConversationID)

	start := time.Now()
	result, err := uc.recognizer.Recognize(ctx, activity)
	uc.metrics.RecordCall(metrics.CollaboratorRecognizer, uc.recognizerName, time.Since(start), err)
	if err != nil {
		uc.l.Errorf(ctx, "%s: recognition failed: %v", logPrefixHandleMessage, err)
		return fmt.Errorf("%w: %w", dispatch.ErrRecognitionUnavailable, err)
	}

	top := result.TopIntent()
	route := uc.resolve(top.Intent)
	uc.l.Debugf(ctx, "%s: Intent scores %v", logPrefixHandleMessage, result.Scores())
	uc.l.Infof(ctx, "%s: Top intent %s (score %.2f) routed to %T", logPrefixHandleMessage, top.Intent, top.Score, route)

	switch r := route.(type) {
	case dispatch.StructuredRoute:
		uc.metrics.RecordRoute(metrics.RouteStructured, r.Intent)
		return uc.handleStructured(ctx, turn, r, result)
	case dispatch.QnARoute:
		uc.metrics.RecordRoute(metrics.RouteQnA, r.Binding.Intent)
		return uc.handleQnA(ctx, turn, r.Binding)
	case dispatch.UnknownRoute:
		uc.metrics.RecordRoute(metrics.RouteUnknown, metrics.IntentOther)
		return turn.SendActivity(ctx, fmt.Sprintf(msgUnrecognizedIntent, r.Intent))
	default:
		panic(fmt.Sprintf("dispatch: unhandled route %T", route))
	}
}
