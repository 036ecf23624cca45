package qnamaker

import "context"

// IQnAMaker queries one knowledge base.
// Implementations are safe for concurrent use.
type IQnAMaker interface {
	GenerateAnswer(ctx context.Context, req GenerateAnswerRequest) (*GenerateAnswerResponse, error)
}
