package knowledge

import (
	"context"

	"dispatch-bot/internal/model"
)

// Answerer queries one knowledge base. Answers are ordered by descending
// score; an empty slice means no answer was found.
type Answerer interface {
	GetAnswers(ctx context.Context, question string) ([]model.Answer, error)
}
