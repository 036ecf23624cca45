package dialogflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	df "google.golang.org/api/dialogflow/v2"
	"google.golang.org/api/option"
)

const (
	DefaultLanguageCode = "en"

	sessionPathFormat = "projects/%s/agent/sessions/%s"
)

// Client wraps the Dialogflow ES API service for one agent.
type Client struct {
	service      *df.Service
	projectID    string
	languageCode string
}

// NewClientFromCredentialsFile creates a client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, projectID, languageCode, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, projectID, languageCode, data)
}

// NewClientFromCredentialsJSON creates a client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, projectID, languageCode string, credentialsJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, df.DialogflowScope)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}
	return New(ctx, projectID, languageCode, option.WithTokenSource(config.TokenSource(ctx)))
}

// New creates a client with explicit client options.
func New(ctx context.Context, projectID, languageCode string, opts ...option.ClientOption) (*Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("dialogflow project id is required")
	}
	if languageCode == "" {
		languageCode = DefaultLanguageCode
	}

	svc, err := df.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialogflow service: %w", err)
	}

	return &Client{service: svc, projectID: projectID, languageCode: languageCode}, nil
}

// DetectIntent classifies text within the given session.
func (c *Client) DetectIntent(ctx context.Context, sessionID, text string) (*DetectIntentResult, error) {
	session := fmt.Sprintf(sessionPathFormat, c.projectID, sessionID)
	req := &df.GoogleCloudDialogflowV2DetectIntentRequest{
		QueryInput: &df.GoogleCloudDialogflowV2QueryInput{
			Text: &df.GoogleCloudDialogflowV2TextInput{
				Text:         text,
				LanguageCode: c.languageCode,
			},
		},
	}

	resp, err := c.service.Projects.Agent.Sessions.DetectIntent(session, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to detect intent: %w", err)
	}

	result := &DetectIntentResult{QueryText: text}
	qr := resp.QueryResult
	if qr == nil {
		return result, nil
	}

	result.QueryText = qr.QueryText
	result.Confidence = qr.IntentDetectionConfidence
	if qr.Intent != nil {
		result.Intent = qr.Intent.DisplayName
	}
	if len(qr.Parameters) > 0 {
		if err := json.Unmarshal(qr.Parameters, &result.Parameters); err != nil {
			return nil, fmt.Errorf("failed to decode dialogflow parameters: %w", err)
		}
	}

	return result, nil
}
