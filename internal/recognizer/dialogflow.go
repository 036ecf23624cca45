package recognizer

import (
	"context"
	"fmt"
	"sort"

	"dispatch-bot/internal/model"
	"dispatch-bot/pkg/dialogflow"
	pkgLog "dispatch-bot/pkg/log"
)

// IntentDetector is the subset of the Dialogflow client used here.
type IntentDetector interface {
	DetectIntent(ctx context.Context, sessionID, text string) (*dialogflow.DetectIntentResult, error)
}

type dialogflowRecognizer struct {
	client IntentDetector
	l      pkgLog.Logger
}

// NewDialogflow creates a Recognizer backed by a Dialogflow ES agent. The
// conversation ID is used as the Dialogflow session.
func NewDialogflow(client IntentDetector, l pkgLog.Logger) Recognizer {
	return &dialogflowRecognizer{client: client, l: l}
}

func (r *dialogflowRecognizer) Recognize(ctx context.Context, activity model.Activity) (model.RecognitionResult, error) {
	session := activity.ConversationID
	if session == "" {
		session = activity.ID
	}

	res, err := r.client.DetectIntent(ctx, session, activity.Text)
	if err != nil {
		return model.RecognitionResult{}, fmt.Errorf("%s: %w", LogPrefixDialogflow, err)
	}

	raw := &model.RawRecognition{Query: res.QueryText, Entities: parameterEntities(res.Parameters)}
	if res.Intent != "" {
		top := model.IntentScore{Intent: res.Intent, Score: res.Confidence}
		raw.TopScoringIntent = top
		raw.Intents = []model.IntentScore{top}
	}

	r.l.Debugf(ctx, "%s: intent=%q confidence=%.2f", LogPrefixDialogflow, res.Intent, res.Confidence)
	return model.RecognitionResult{
		Text:     activity.Text,
		Intents:  raw.Intents,
		Entities: raw.Entities,
		Raw:      raw,
	}, nil
}

// parameterEntities turns filled Dialogflow parameters into entities, ordered by parameter name.
func parameterEntities(params map[string]interface{}) []model.Entity {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var entities []model.Entity
	for _, name := range names {
		switch v := params[name].(type) {
		case nil:
		case string:
			if v != "" {
				entities = append(entities, model.Entity{Entity: v, Type: name})
			}
		case []interface{}:
			for _, item := range v {
				if s := fmt.Sprint(item); s != "" {
					entities = append(entities, model.Entity{Entity: s, Type: name})
				}
			}
		default:
			entities = append(entities, model.Entity{Entity: fmt.Sprint(v), Type: name})
		}
	}
	return entities
}
