package recognizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-bot/config"
	"dispatch-bot/internal/model"
	"dispatch-bot/internal/recognizer"
	"dispatch-bot/pkg/dialogflow"
	pkgLog "dispatch-bot/pkg/log"
	"dispatch-bot/pkg/luis"
)

type fakeLUIS struct {
	resp  *luis.PredictionResponse
	err   error
	query string
}

func (f *fakeLUIS) Predict(ctx context.Context, query string) (*luis.PredictionResponse, error) {
	f.query = query
	return f.resp, f.err
}

type fakeDetector struct {
	res     *dialogflow.DetectIntentResult
	err     error
	session string
}

func (f *fakeDetector) DetectIntent(ctx context.Context, sessionID, text string) (*dialogflow.DetectIntentResult, error) {
	f.session = sessionID
	return f.res, f.err
}

type fakeChat struct {
	content string
	err     error
	req     openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.content}}},
	}, nil
}

func TestLUISRecognize(t *testing.T) {
	ctx := context.Background()
	l := pkgLog.NewNop()

	t.Run("Success Flow", func(t *testing.T) {
		fake := &fakeLUIS{resp: &luis.PredictionResponse{
			Query:            "turn on the lights",
			TopScoringIntent: &luis.IntentModel{Intent: "l_HomeAutomation", Score: 0.92},
			Intents: []luis.IntentModel{
				{Intent: "l_HomeAutomation", Score: 0.92},
				{Intent: "None", Score: 0.03},
			},
			ConnectedServiceResult: &luis.PredictionResponse{
				TopScoringIntent: &luis.IntentModel{Intent: "HomeAutomation.TurnOn", Score: 0.88},
				Entities: []luis.EntityModel{
					{Entity: "lights", Type: "HomeAutomation.DeviceType", StartIndex: 12, EndIndex: 17},
				},
			},
		}}

		res, err := recognizer.NewLUIS(fake, l).Recognize(ctx, model.Activity{Text: "turn on the lights"})
		require.NoError(t, err)

		assert.Equal(t, "turn on the lights", fake.query)
		top := res.TopIntent()
		assert.Equal(t, "l_HomeAutomation", top.Intent)
		assert.InDelta(t, 0.92, top.Score, 1e-9)
		require.NotNil(t, res.Raw)
		require.NotNil(t, res.Raw.ConnectedServiceResult)
		assert.Equal(t, "HomeAutomation.TurnOn", res.Raw.ConnectedServiceResult.TopScoringIntent.Intent)
		assert.Equal(t, "lights", res.Raw.ConnectedServiceResult.Entities[0].Entity)
	})

	t.Run("Top Scoring Intent Only", func(t *testing.T) {
		fake := &fakeLUIS{resp: &luis.PredictionResponse{
			TopScoringIntent: &luis.IntentModel{Intent: "l_Weather", Score: 0.7},
		}}

		res, err := recognizer.NewLUIS(fake, l).Recognize(ctx, model.Activity{Text: "rain?"})
		require.NoError(t, err)

		top := res.TopIntent()
		assert.Equal(t, "l_Weather", top.Intent)
	})

	t.Run("Service Error Flow", func(t *testing.T) {
		fake := &fakeLUIS{err: errors.New("boom")}

		_, err := recognizer.NewLUIS(fake, l).Recognize(ctx, model.Activity{Text: "hi"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestDialogflowRecognize(t *testing.T) {
	ctx := context.Background()
	l := pkgLog.NewNop()

	t.Run("Success Flow", func(t *testing.T) {
		fake := &fakeDetector{res: &dialogflow.DetectIntentResult{
			QueryText:  "weather in Paris tomorrow",
			Intent:     "l_Weather",
			Confidence: 0.81,
			Parameters: map[string]interface{}{
				"geo-city": "Paris",
				"date":     "tomorrow",
				"unused":   "",
				"tags":     []interface{}{"a", "b"},
			},
		}}

		res, err := recognizer.NewDialogflow(fake, l).Recognize(ctx, model.Activity{
			ID: "m1", ConversationID: "chat-42", Text: "weather in Paris tomorrow",
		})
		require.NoError(t, err)

		assert.Equal(t, "chat-42", fake.session)
		top := res.TopIntent()
		assert.Equal(t, "l_Weather", top.Intent)
		assert.InDelta(t, 0.81, top.Score, 1e-9)
		assert.Equal(t, "l_Weather", res.Raw.TopScoringIntent.Intent)

		var names []string
		for _, e := range res.Entities {
			names = append(names, e.Type+"="+e.Entity)
		}
		assert.Equal(t, []string{"date=tomorrow", "geo-city=Paris", "tags=a", "tags=b"}, names)
	})

	t.Run("Fallback Intent", func(t *testing.T) {
		fake := &fakeDetector{res: &dialogflow.DetectIntentResult{QueryText: "???"}}

		res, err := recognizer.NewDialogflow(fake, l).Recognize(ctx, model.Activity{ID: "m2", Text: "???"})
		require.NoError(t, err)

		assert.Equal(t, "m2", fake.session)
		top := res.TopIntent()
		assert.Equal(t, model.NoneIntent, top.Intent)
		assert.Zero(t, top.Score)
	})

	t.Run("Service Error Flow", func(t *testing.T) {
		fake := &fakeDetector{err: errors.New("unavailable")}

		_, err := recognizer.NewDialogflow(fake, l).Recognize(ctx, model.Activity{Text: "hi"})
		assert.Error(t, err)
	})
}

func TestLLMRecognize(t *testing.T) {
	ctx := context.Background()
	l := pkgLog.NewNop()
	catalog := []recognizer.IntentDescription{
		{Intent: "l_HomeAutomation", Description: "control lights and devices"},
		{Intent: "q_food-qna", Description: "questions about food assistance"},
	}

	t.Run("Success Flow", func(t *testing.T) {
		fake := &fakeChat{content: "```json\n{\"intent\":\"q_food-qna\",\"confidence\":85,\"reasoning\":\"food\",\"entities\":[{\"entity\":\"pantry\",\"type\":\"place\"}]}\n```"}

		res, err := recognizer.NewLLM(fake, "gpt-4o-mini", catalog, l).Recognize(ctx, model.Activity{Text: "where is the nearest pantry"})
		require.NoError(t, err)

		top := res.TopIntent()
		assert.Equal(t, "q_food-qna", top.Intent)
		assert.InDelta(t, 0.85, top.Score, 1e-9)
		require.Len(t, res.Entities, 1)
		assert.Equal(t, "pantry", res.Entities[0].Entity)

		assert.Equal(t, "gpt-4o-mini", fake.req.Model)
		require.Len(t, fake.req.Messages, 2)
		assert.Contains(t, fake.req.Messages[0].Content, "- l_HomeAutomation: control lights and devices")
		assert.Contains(t, fake.req.Messages[0].Content, "- None:")
		assert.Contains(t, fake.req.Messages[1].Content, "nearest pantry")
	})

	t.Run("Confidence Is Clamped", func(t *testing.T) {
		fake := &fakeChat{content: `{"intent":"l_HomeAutomation","confidence":150}`}

		res, err := recognizer.NewLLM(fake, "m", catalog, l).Recognize(ctx, model.Activity{Text: "lights"})
		require.NoError(t, err)

		top := res.TopIntent()
		assert.Equal(t, 1.0, top.Score)
	})

	t.Run("Invalid JSON Falls Back To None", func(t *testing.T) {
		fake := &fakeChat{content: "I think it's about food"}

		res, err := recognizer.NewLLM(fake, "m", catalog, l).Recognize(ctx, model.Activity{Text: "food"})
		require.NoError(t, err)

		top := res.TopIntent()
		assert.Equal(t, model.NoneIntent, top.Intent)
		assert.Zero(t, top.Score)
	})

	t.Run("Empty Response Falls Back To None", func(t *testing.T) {
		fake := &fakeChat{content: "  "}

		res, err := recognizer.NewLLM(fake, "m", catalog, l).Recognize(ctx, model.Activity{Text: "food"})
		require.NoError(t, err)

		top := res.TopIntent()
		assert.Equal(t, model.NoneIntent, top.Intent)
	})

	t.Run("Call Error Flow", func(t *testing.T) {
		fake := &fakeChat{err: errors.New("rate limited")}

		_, err := recognizer.NewLLM(fake, "m", catalog, l).Recognize(ctx, model.Activity{Text: "food"})
		assert.Error(t, err)
	})
}

type slowRecognizer struct{}

func (slowRecognizer) Recognize(ctx context.Context, activity model.Activity) (model.RecognitionResult, error) {
	<-ctx.Done()
	return model.RecognitionResult{}, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	r := recognizer.WithTimeout(slowRecognizer{}, 10*time.Millisecond)

	_, err := r.Recognize(context.Background(), model.Activity{Text: "hi"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	l := pkgLog.NewNop()

	t.Run("LUIS Provider", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/luis/v2.0/apps/app-1", r.URL.Path)
			assert.Equal(t, "key-1", r.Header.Get(luis.SubscriptionKeyHeader))
			assert.Equal(t, "true", r.URL.Query().Get("log"))
			_ = json.NewEncoder(w).Encode(luis.PredictionResponse{
				Query:            r.URL.Query().Get("q"),
				TopScoringIntent: &luis.IntentModel{Intent: "l_Weather", Score: 0.6},
			})
		}))
		defer ts.Close()

		r, err := recognizer.New(ctx, config.RecognizerConfig{
			Provider: config.ProviderLUIS,
			Timeout:  time.Second,
			LUIS:     config.LUISConfig{AppID: "app-1", APIKey: "key-1", Endpoint: ts.URL, Log: true},
		}, nil, nil, l)
		require.NoError(t, err)

		res, err := r.Recognize(ctx, model.Activity{Text: "is it sunny"})
		require.NoError(t, err)
		top := res.TopIntent()
		assert.Equal(t, "l_Weather", top.Intent)
	})

	t.Run("LLM Provider", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":0,"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"{\"intent\":\"l_HomeAutomation\",\"confidence\":90}"},"finish_reason":"stop"}]}`))
		}))
		defer ts.Close()

		r, err := recognizer.New(ctx, config.RecognizerConfig{
			Provider: config.ProviderLLM,
			LLM:      config.LLMConfig{APIKey: "sk-test", BaseURL: ts.URL + "/v1", Model: "m"},
		}, nil, nil, l)
		require.NoError(t, err)

		res, err := r.Recognize(ctx, model.Activity{Text: "lights off"})
		require.NoError(t, err)
		top := res.TopIntent()
		assert.Equal(t, "l_HomeAutomation", top.Intent)
		assert.InDelta(t, 0.9, top.Score, 1e-9)
	})

	t.Run("Unknown Provider", func(t *testing.T) {
		_, err := recognizer.New(ctx, config.RecognizerConfig{Provider: "watson"}, nil, nil, l)
		assert.Error(t, err)
	})

	t.Run("LUIS Missing App ID", func(t *testing.T) {
		_, err := recognizer.New(ctx, config.RecognizerConfig{Provider: config.ProviderLUIS}, nil, nil, l)
		assert.Error(t, err)
	})
}
