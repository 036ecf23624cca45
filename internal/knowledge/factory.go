package knowledge

import (
	"fmt"

	"dispatch-bot/config"
	"dispatch-bot/pkg/cognitive"
	"dispatch-bot/pkg/qnamaker"
)

// InitializeBindings builds one QnA Maker backed binding per configured
// knowledge base. A non-nil auth replaces endpoint-key authorization.
func InitializeBindings(kbs []config.KnowledgeBaseConfig, auth cognitive.Authorizer) (*Bindings, error) {
	bindings := make([]Binding, 0, len(kbs))
	for _, kb := range kbs {
		client, err := qnamaker.New(qnamaker.Config{
			KnowledgeBaseID: kb.KnowledgeBaseID,
			EndpointKey:     kb.EndpointKey,
			Host:            kb.Host,
			Timeout:         kb.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("knowledge base %s: %w", kb.Domain, err)
		}
		if auth != nil && kb.EndpointKey == "" {
			client.WithAuthorizer(auth)
		}

		bindings = append(bindings, Binding{
			Intent:   kb.Intent,
			Domain:   kb.Domain,
			Answerer: NewQnAMakerAnswerer(client, Options{Top: kb.Top, ScoreThreshold: kb.ScoreThreshold}),
		})
	}
	return NewBindings(bindings...)
}
