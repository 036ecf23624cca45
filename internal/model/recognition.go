package model

// NoneIntent is reported as the top intent when a recognition result carries no intents.
const NoneIntent = "None"

// IntentScore is one classified intent and its confidence (0..1).
type IntentScore struct {
	Intent string
	Score  float64
}

// Entity is a concept extracted from the message by the recognition service.
type Entity struct {
	Entity     string // matched text
	Type       string // category
	StartIndex int
	EndIndex   int
	Score      float64
}

// RawRecognition is the nested payload returned by the recognition service.
// Structured intent handlers read their sub-model output from here.
type RawRecognition struct {
	Query                  string
	TopScoringIntent       IntentScore
	Intents                []IntentScore
	Entities               []Entity
	ConnectedServiceResult *RawRecognition
}

// RecognitionResult is the output of one recognition call. Intents keep the
// order in which the service declared them.
type RecognitionResult struct {
	Text     string
	Intents  []IntentScore
	Entities []Entity
	Raw      *RawRecognition
}

// Scores returns the intent identifier to score mapping.
func (r RecognitionResult) Scores() map[string]float64 {
	scores := make(map[string]float64, len(r.Intents))
	for _, is := range r.Intents {
		if _, ok := scores[is.Intent]; !ok {
			scores[is.Intent] = is.Score
		}
	}
	return scores
}

// TopIntent returns the highest scoring intent. On equal scores the intent
// declared first wins. An empty result yields NoneIntent with score 0.
func (r RecognitionResult) TopIntent() IntentScore {
	top := IntentScore{Intent: NoneIntent}
	found := false
	for _, is := range r.Intents {
		if !found || is.Score > top.Score {
			top = is
			found = true
		}
	}
	return top
}
