package recognizer

// Log prefixes
const (
	LogPrefixLUIS       = "internal.recognizer.luis.Recognize"
	LogPrefixDialogflow = "internal.recognizer.dialogflow.Recognize"
	LogPrefixLLM        = "internal.recognizer.llm.Recognize"
)

// Router prompt for the LLM classifier.
const (
	PromptRouterSystem = `You are the dispatch router of a help bot. Classify the user's message into exactly one of the intents listed below.

Intents:
%s
- %s: none of the above applies

Return JSON with this format:
{
  "intent": "<intent identifier>",
  "confidence": 0-100,
  "reasoning": "short explanation",
  "entities": [{"entity": "<text from the message>", "type": "<category>"}]
}`

	PromptUserMessage = "Message: %q"
)

// LLM configuration
const (
	RouterTemperature = 0.1
)

// Error messages
const (
	ErrMsgLLMCallFailed   = "LLM call failed"
	ErrMsgJSONParseFailed = "Failed to parse JSON, falling back to None"
	ErrMsgEmptyResponse   = "Empty LLM response, falling back to None"
)
