package luis

import (
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

// Config configures a LUIS prediction client.
type Config struct {
	AppID       string
	EndpointKey string
	HostName    string // region host, e.g. "westus"
	Endpoint    string // full endpoint, overrides HostName
	Timeout     time.Duration

	// IncludeAllIntents requests scores for every intent (verbose=true),
	// which also returns instance data for entities.
	IncludeAllIntents bool
	Staging           bool
	Log               bool
}

// Client is the LUIS v2 prediction API client.
type Client struct {
	appID      string
	endpoint   string
	verbose    bool
	staging    bool
	logQuery   bool
	auth       cognitive.Authorizer
	httpClient *http.Client
}

var _ ILUIS = (*Client)(nil)

// New creates a LUIS client authorized with the endpoint key.
func New(cfg Config) (*Client, error) {
	if cfg.AppID == "" {
		return nil, fmt.Errorf("luis app id is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		if cfg.HostName == "" {
			return nil, fmt.Errorf("luis host name or endpoint is required")
		}
		endpoint = fmt.Sprintf(endpointFormat, cfg.HostName)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		appID:      cfg.AppID,
		endpoint:   strings.TrimRight(endpoint, "/"),
		verbose:    cfg.IncludeAllIntents,
		staging:    cfg.Staging,
		logQuery:   cfg.Log,
		auth:       cognitive.HeaderAuthorizer{Header: SubscriptionKeyHeader, Value: cfg.EndpointKey},
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// WithAuthorizer replaces the endpoint-key authorization, e.g. with Azure AD tokens.
func (c *Client) WithAuthorizer(auth cognitive.Authorizer) *Client {
	c.auth = auth
	return c
}

// Predict sends the utterance to the prediction endpoint.
func (c *Client) Predict(ctx context.Context, query string) (*PredictionResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("verbose", fmt.Sprintf("%t", c.verbose))
	params.Set("staging", fmt.Sprintf("%t", c.staging))
	params.Set("log", fmt.Sprintf("%t", c.logQuery))

	reqURL := c.endpoint + fmt.Sprintf(predictPath, url.PathEscape(c.appID)) + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.auth.Authorize(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call LUIS API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.message() != "" {
			return nil, fmt.Errorf("luis API error (%d): %s", resp.StatusCode, errResp.message())
		}
		return nil, fmt.Errorf("luis API error %d: %s", resp.StatusCode, string(raw))
	}

	var result PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode LUIS response: %w", err)
	}

	return &result, nil
}
