// Package cognitive holds request authorization shared by the Azure
// cognitive service clients (LUIS, QnA Maker).
package cognitive

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultScope is the Azure AD scope for cognitive services.
	DefaultScope = "https://cognitiveservices.azure.com/.default"

	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// Authorizer decorates an outgoing request with credentials.
type Authorizer interface {
	Authorize(req *http.Request) error
}

// HeaderAuthorizer sets a fixed header, e.g. "Ocp-Apim-Subscription-Key" or
// "Authorization: EndpointKey <key>".
type HeaderAuthorizer struct {
	Header string
	Value  string
}

// Authorize implements Authorizer.
func (a HeaderAuthorizer) Authorize(req *http.Request) error {
	if a.Value == "" {
		return fmt.Errorf("cognitive: empty credential for header %s", a.Header)
	}
	req.Header.Set(a.Header, a.Value)
	return nil
}

// TokenAuthorizer sets an Azure AD bearer token obtained from a token source.
type TokenAuthorizer struct {
	Source oauth2.TokenSource
}

// Authorize implements Authorizer.
func (a TokenAuthorizer) Authorize(req *http.Request) error {
	tok, err := a.Source.Token()
	if err != nil {
		return fmt.Errorf("cognitive: failed to obtain token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}

// ClientCredentials configures Azure AD client-credentials auth.
type ClientCredentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Scope        string
	TokenURL     string // overrides the tenant token endpoint, used in tests
}

// Enabled reports whether enough fields are set to request tokens.
func (c ClientCredentials) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && (c.TenantID != "" || c.TokenURL != "")
}

// NewTokenAuthorizer builds a caching TokenAuthorizer for the given credentials.
func NewTokenAuthorizer(ctx context.Context, c ClientCredentials) (TokenAuthorizer, error) {
	if !c.Enabled() {
		return TokenAuthorizer{}, fmt.Errorf("cognitive: incomplete client credentials")
	}

	scope := c.Scope
	if scope == "" {
		scope = DefaultScope
	}
	tokenURL := c.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(tokenURLFormat, c.TenantID)
	}

	cfg := clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{scope},
	}
	return TokenAuthorizer{Source: cfg.TokenSource(ctx)}, nil
}
