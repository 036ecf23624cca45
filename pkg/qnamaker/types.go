package qnamaker

// GenerateAnswerRequest is the generateAnswer request body.
type GenerateAnswerRequest struct {
	Question       string  `json:"question"`
	Top            int     `json:"top,omitempty"`
	ScoreThreshold float64 `json:"scoreThreshold,omitempty"` // 0..100
	IsTest         bool    `json:"isTest,omitempty"`
}

// GenerateAnswerResponse is the generateAnswer response body.
type GenerateAnswerResponse struct {
	Answers               []QueryResult `json:"answers"`
	ActiveLearningEnabled bool          `json:"activeLearningEnabled,omitempty"`
}

// QueryResult is one answer. Score is in 0..100.
type QueryResult struct {
	ID        int        `json:"id"`
	Questions []string   `json:"questions,omitempty"`
	Answer    string     `json:"answer"`
	Score     float64    `json:"score"`
	Source    string     `json:"source,omitempty"`
	Metadata  []Metadata `json:"metadata,omitempty"`
}

// Metadata is a name/value pair attached to a QnA pair.
type Metadata struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ErrorResponse is the QnA Maker error body.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
