package usecase

import (
	"context"
	"fmt"
	"time"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/knowledge"
	"dispatch-bot/internal/metrics"
)

// handleQnA relays the top answer of the bound knowledge base, or the
// domain's fallback sentence when there is none.
func (uc *implUseCase) handleQnA(ctx context.Context, turn dispatch.Turn, b knowledge.Binding) error {
	start := time.Now()
	answers, err := b.Answerer.GetAnswers(ctx, turn.Activity().Text)
	uc.metrics.RecordCall(metrics.CollaboratorKnowledge, b.Domain, time.Since(start), err)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %s knowledge base failed: %v", logPrefixQnA, b.Domain, err)
		return fmt.Errorf("%w: %s: %w", dispatch.ErrAnswerServiceUnavailable, b.Domain, err)
	}

	if len(answers) == 0 {
		uc.l.Infof(ctx, "%s: No answer in %s", logPrefixQnA, b.Domain)
		return turn.SendActivity(ctx, fmt.Sprintf(msgNoAnswer, b.Domain))
	}

	uc.l.Debugf(ctx, "%s: %s answer %d (score %.2f)", logPrefixQnA, b.Domain, answers[0].ID, answers[0].Score)
	return turn.SendActivity(ctx, answers[0].Text)
}
