package recognizer

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"dispatch-bot/config"
	"dispatch-bot/internal/model"
	"dispatch-bot/pkg/cognitive"
	"dispatch-bot/pkg/dialogflow"
	pkgLog "dispatch-bot/pkg/log"
	"dispatch-bot/pkg/luis"
)

// DefaultLanguageCode is used for Dialogflow when none is configured.
const DefaultLanguageCode = "en"

// New builds the Recognizer selected by cfg.Provider. The catalogue is only
// used by the LLM provider. A non-nil auth replaces the LUIS endpoint key.
func New(ctx context.Context, cfg config.RecognizerConfig, catalog []IntentDescription, auth cognitive.Authorizer, l pkgLog.Logger) (Recognizer, error) {
	var r Recognizer

	switch cfg.Provider {
	case config.ProviderLUIS, "":
		client, err := luis.New(luis.Config{
			AppID:             cfg.LUIS.AppID,
			EndpointKey:       cfg.LUIS.APIKey,
			HostName:          cfg.LUIS.HostName,
			Endpoint:          cfg.LUIS.Endpoint,
			Timeout:           cfg.Timeout,
			IncludeAllIntents: cfg.LUIS.IncludeAllIntents,
			Staging:           cfg.LUIS.Staging,
			Log:               cfg.LUIS.Log,
		})
		if err != nil {
			return nil, err
		}
		if auth != nil && cfg.LUIS.APIKey == "" {
			client.WithAuthorizer(auth)
		}
		r = NewLUIS(client, l)

	case config.ProviderDialogflow:
		lang := cfg.Dialogflow.LanguageCode
		if lang == "" {
			lang = DefaultLanguageCode
		}
		client, err := dialogflow.NewClientFromCredentialsFile(ctx, cfg.Dialogflow.ProjectID, lang, cfg.Dialogflow.CredentialsPath)
		if err != nil {
			return nil, err
		}
		r = NewDialogflow(client, l)

	case config.ProviderLLM:
		oc := openai.DefaultConfig(cfg.LLM.APIKey)
		if cfg.LLM.BaseURL != "" {
			oc.BaseURL = cfg.LLM.BaseURL
		}
		r = NewLLM(openai.NewClientWithConfig(oc), cfg.LLM.Model, catalog, l)

	default:
		return nil, fmt.Errorf("unknown recognizer provider %q", cfg.Provider)
	}

	if cfg.Timeout > 0 {
		r = WithTimeout(r, cfg.Timeout)
	}
	return r, nil
}

type timeoutRecognizer struct {
	next    Recognizer
	timeout time.Duration
}

// WithTimeout bounds every recognition call by d.
func WithTimeout(next Recognizer, d time.Duration) Recognizer {
	return &timeoutRecognizer{next: next, timeout: d}
}

func (r *timeoutRecognizer) Recognize(ctx context.Context, activity model.Activity) (model.RecognitionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Recognize(ctx, activity)
}
