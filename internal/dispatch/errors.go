package dispatch

import "errors"

// Domain-specific errors for the dispatch package.
var (
	ErrRecognitionUnavailable   = errors.New("recognition service unavailable")
	ErrAnswerServiceUnavailable = errors.New("answer service unavailable")
)
