package knowledge

import "errors"

var (
	ErrEmptyIntent     = errors.New("binding intent is empty")
	ErrEmptyDomain     = errors.New("binding domain is empty")
	ErrNilAnswerer     = errors.New("binding answerer is nil")
	ErrDuplicateIntent = errors.New("intent is already bound")
)
