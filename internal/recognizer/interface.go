package recognizer

import (
	"context"

	"dispatch-bot/internal/model"
)

// Recognizer classifies the text of an activity into ranked intents.
type Recognizer interface {
	Recognize(ctx context.Context, activity model.Activity) (model.RecognitionResult, error)
}

// IntentDescription describes one intent to classifiers that need a catalogue.
type IntentDescription struct {
	Intent      string
	Description string
}
