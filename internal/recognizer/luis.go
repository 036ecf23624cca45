package recognizer

import (
	"context"
	"fmt"

	"dispatch-bot/internal/model"
	pkgLog "dispatch-bot/pkg/log"
	"dispatch-bot/pkg/luis"
)

type luisRecognizer struct {
	client luis.ILUIS
	l      pkgLog.Logger
}

// NewLUIS creates a Recognizer backed by a LUIS dispatch app.
func NewLUIS(client luis.ILUIS, l pkgLog.Logger) Recognizer {
	return &luisRecognizer{client: client, l: l}
}

func (r *luisRecognizer) Recognize(ctx context.Context, activity model.Activity) (model.RecognitionResult, error) {
	resp, err := r.client.Predict(ctx, activity.Text)
	if err != nil {
		return model.RecognitionResult{}, fmt.Errorf("%s: %w", LogPrefixLUIS, err)
	}

	raw := convertPrediction(resp)
	result := model.RecognitionResult{
		Text:     activity.Text,
		Intents:  raw.Intents,
		Entities: raw.Entities,
		Raw:      raw,
	}
	// Without verbose=true LUIS only returns the top scoring intent.
	if len(result.Intents) == 0 && raw.TopScoringIntent.Intent != "" {
		result.Intents = []model.IntentScore{raw.TopScoringIntent}
	}

	r.l.Debugf(ctx, "%s: %d intents, %d entities", LogPrefixLUIS, len(result.Intents), len(result.Entities))
	return result, nil
}

func convertPrediction(resp *luis.PredictionResponse) *model.RawRecognition {
	if resp == nil {
		return nil
	}

	raw := &model.RawRecognition{Query: resp.Query}
	if resp.TopScoringIntent != nil {
		raw.TopScoringIntent = model.IntentScore{Intent: resp.TopScoringIntent.Intent, Score: resp.TopScoringIntent.Score}
	}
	for _, in := range resp.Intents {
		raw.Intents = append(raw.Intents, model.IntentScore{Intent: in.Intent, Score: in.Score})
	}
	for _, e := range resp.Entities {
		raw.Entities = append(raw.Entities, model.Entity{
			Entity:     e.Entity,
			Type:       e.Type,
			StartIndex: e.StartIndex,
			EndIndex:   e.EndIndex,
			Score:      e.Score,
		})
	}
	raw.ConnectedServiceResult = convertPrediction(resp.ConnectedServiceResult)
	return raw
}
