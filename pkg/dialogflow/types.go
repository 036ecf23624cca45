package dialogflow

// DetectIntentResult is the part of a detectIntent response the recognizer needs.
type DetectIntentResult struct {
	QueryText  string
	Intent     string  // intent display name
	Confidence float64 // 0..1
	Parameters map[string]interface{}
}
