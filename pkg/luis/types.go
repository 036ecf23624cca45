package luis

// PredictionResponse is the LUIS v2 prediction payload. Dispatch apps fill
// ConnectedServiceResult with the prediction of the connected sub-app.
type PredictionResponse struct {
	Query                  string              `json:"query"`
	TopScoringIntent       *IntentModel        `json:"topScoringIntent,omitempty"`
	Intents                []IntentModel       `json:"intents,omitempty"`
	Entities               []EntityModel       `json:"entities,omitempty"`
	ConnectedServiceResult *PredictionResponse `json:"connectedServiceResult,omitempty"`
}

// IntentModel is one intent prediction.
type IntentModel struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

// EntityModel is one extracted entity.
type EntityModel struct {
	Entity     string  `json:"entity"`
	Type       string  `json:"type"`
	StartIndex int     `json:"startIndex"`
	EndIndex   int     `json:"endIndex"`
	Score      float64 `json:"score,omitempty"`
}

// ErrorResponse covers both error shapes the LUIS endpoint returns.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (e ErrorResponse) message() string {
	if e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return e.Message
}
