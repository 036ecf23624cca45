package usecase

import (
	"context"
	"fmt"
	"strings"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/model"
)

// handleStructured reports the sub-model prediction carried in the raw
// recognition payload. It does not call any service.
func (uc *implUseCase) handleStructured(ctx context.Context, turn dispatch.Turn, r dispatch.StructuredRoute, result model.RecognitionResult) error {
	label := subModelTopIntent(result)
	intents, entities := result.Intents, result.Entities
	if result.Raw != nil {
		intents, entities = result.Raw.Intents, result.Raw.Entities
	}

	uc.l.Debugf(ctx, "%s: %s label=%s intents=%d entities=%d", logPrefixStructured, r.Domain, label, len(intents), len(entities))

	if err := turn.SendActivity(ctx, fmt.Sprintf(msgTopIntent, r.Domain, label)); err != nil {
		return err
	}

	labels := make([]string, 0, len(intents))
	for _, in := range intents {
		labels = append(labels, in.Intent)
	}
	if err := turn.SendActivity(ctx, fmt.Sprintf(msgIntentsDetected, r.Domain, strings.Join(labels, listSeparator))); err != nil {
		return err
	}

	if len(entities) == 0 {
		return nil
	}
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Entity)
	}
	return turn.SendActivity(ctx, fmt.Sprintf(msgEntitiesFound, r.Domain, strings.Join(names, listSeparator)))
}

// subModelTopIntent prefers the connected sub-model's top intent, then the
// dispatch model's own, then the computed top intent.
func subModelTopIntent(result model.RecognitionResult) string {
	if raw := result.Raw; raw != nil {
		if sub := raw.ConnectedServiceResult; sub != nil && sub.TopScoringIntent.Intent != "" {
			return sub.TopScoringIntent.Intent
		}
		if raw.TopScoringIntent.Intent != "" {
			return raw.TopScoringIntent.Intent
		}
	}
	return result.TopIntent().Intent
}
