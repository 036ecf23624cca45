package qnamaker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dispatch-bot/pkg/cognitive"
)

// Config configures a client bound to one knowledge base.
type Config struct {
	KnowledgeBaseID string
	EndpointKey     string
	Host            string // e.g. "https://my-qna.azurewebsites.net/qnamaker"
	Timeout         time.Duration
}

// Client is the QnA Maker runtime client for one knowledge base.
type Client struct {
	kbID       string
	host       string
	auth       cognitive.Authorizer
	httpClient *http.Client
}

var _ IQnAMaker = (*Client)(nil)

// New creates a QnA Maker client authorized with the endpoint key.
func New(cfg Config) (*Client, error) {
	if cfg.KnowledgeBaseID == "" {
		return nil, fmt.Errorf("qnamaker knowledge base id is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("qnamaker host is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		kbID:       cfg.KnowledgeBaseID,
		host:       strings.TrimRight(cfg.Host, "/"),
		auth:       cognitive.HeaderAuthorizer{Header: authorizationHeader, Value: endpointKey(cfg.EndpointKey)},
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func endpointKey(key string) string {
	if key == "" {
		return ""
	}
	return endpointKeyPrefix + key
}

// WithAuthorizer replaces the endpoint-key authorization, e.g. with Azure AD tokens.
func (c *Client) WithAuthorizer(auth cognitive.Authorizer) *Client {
	c.auth = auth
	return c
}

// KnowledgeBaseID returns the bound knowledge base id.
func (c *Client) KnowledgeBaseID() string {
	return c.kbID
}

// GenerateAnswer queries the knowledge base. Answers are returned as sent by the service.
func (c *Client) GenerateAnswer(ctx context.Context, req GenerateAnswerRequest) (*GenerateAnswerResponse, error) {
	if req.Top <= 0 {
		req.Top = DefaultTop
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := c.host + fmt.Sprintf(generateAnswerPath, url.PathEscape(c.kbID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if err := c.auth.Authorize(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call QnA Maker API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("qnamaker API error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("qnamaker API error %d: %s", resp.StatusCode, string(raw))
	}

	var result GenerateAnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode QnA Maker response: %w", err)
	}

	return &result, nil
}
