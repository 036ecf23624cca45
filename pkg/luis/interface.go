package luis

import "context"

// ILUIS predicts intents for an utterance.
// Implementations are safe for concurrent use.
type ILUIS interface {
	Predict(ctx context.Context, query string) (*PredictionResponse, error)
}
