package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"dispatch-bot/internal/model"
	pkgLog "dispatch-bot/pkg/log"
)

// ChatCompleter is the subset of the OpenAI client used here.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type llmOutput struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"` // 0-100
	Reasoning  string  `json:"reasoning"`
	Entities   []struct {
		Entity string `json:"entity"`
		Type   string `json:"type"`
	} `json:"entities"`
}

type llmRecognizer struct {
	client  ChatCompleter
	model   string
	catalog []IntentDescription
	l       pkgLog.Logger
}

// NewLLM creates a Recognizer that asks an OpenAI-compatible chat model to
// pick one intent of the catalogue.
func NewLLM(client ChatCompleter, modelName string, catalog []IntentDescription, l pkgLog.Logger) Recognizer {
	return &llmRecognizer{client: client, model: modelName, catalog: catalog, l: l}
}

func (r *llmRecognizer) systemPrompt() string {
	var sb strings.Builder
	for _, c := range r.catalog {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Intent, c.Description)
	}
	return fmt.Sprintf(PromptRouterSystem, strings.TrimRight(sb.String(), "\n"), model.NoneIntent)
}

func (r *llmRecognizer) Recognize(ctx context.Context, activity model.Activity) (model.RecognitionResult, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: RouterTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(PromptUserMessage, activity.Text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return model.RecognitionResult{}, fmt.Errorf("%s: %s: %w", LogPrefixLLM, ErrMsgLLMCallFailed, err)
	}

	fallback := model.RecognitionResult{Text: activity.Text, Raw: &model.RawRecognition{Query: activity.Text}}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		r.l.Warnf(ctx, "%s: %s", LogPrefixLLM, ErrMsgEmptyResponse)
		return fallback, nil
	}

	// Strip markdown code blocks if present (```json ... ```)
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var out llmOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil || out.Intent == "" {
		r.l.Warnf(ctx, "%s: %s: %v", LogPrefixLLM, ErrMsgJSONParseFailed, err)
		return fallback, nil
	}

	top := model.IntentScore{Intent: out.Intent, Score: clampScore(out.Confidence / 100)}
	raw := &model.RawRecognition{
		Query:            activity.Text,
		TopScoringIntent: top,
		Intents:          []model.IntentScore{top},
	}
	for _, e := range out.Entities {
		if e.Entity != "" {
			raw.Entities = append(raw.Entities, model.Entity{Entity: e.Entity, Type: e.Type})
		}
	}

	r.l.Infof(ctx, "%s: Classified as %s (confidence: %.0f%%) %s", LogPrefixLLM, out.Intent, out.Confidence, out.Reasoning)
	return model.RecognitionResult{
		Text:     activity.Text,
		Intents:  raw.Intents,
		Entities: raw.Entities,
		Raw:      raw,
	}, nil
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}
