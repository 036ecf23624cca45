package main

import (
	"context"
	"fmt"

	"dispatch-bot/config"
	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/dispatch/usecase"
	"dispatch-bot/internal/knowledge"
	"dispatch-bot/internal/metrics"
	"dispatch-bot/internal/recognizer"
	"dispatch-bot/pkg/cognitive"
)

// buildUseCase wires the recognizer and knowledge bases into the dispatcher.
func (a *app) buildUseCase(ctx context.Context, rec metrics.Recorder) (dispatch.UseCase, error) {
	cfg := a.cfg

	var auth cognitive.Authorizer
	if cfg.AzureAD.Enabled() {
		tokenAuth, err := cognitive.NewTokenAuthorizer(ctx, cognitive.ClientCredentials{
			TenantID:     cfg.AzureAD.TenantID,
			ClientID:     cfg.AzureAD.ClientID,
			ClientSecret: cfg.AzureAD.ClientSecret,
		})
		if err != nil {
			return nil, err
		}
		auth = tokenAuth
		a.l.Info(ctx, "Azure AD authentication enabled for cognitive services")
	}

	bindings, err := knowledge.InitializeBindings(cfg.KnowledgeBases, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize knowledge bases: %w", err)
	}
	for _, intent := range bindings.Intents() {
		b, _ := bindings.Lookup(intent)
		a.l.Infof(ctx, "Knowledge base %s bound to intent %s", b.Domain, intent)
	}

	rz, err := recognizer.New(ctx, cfg.Recognizer, intentCatalog(cfg), auth, a.l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recognizer: %w", err)
	}
	a.l.Infof(ctx, "Recognizer: %s", cfg.Recognizer.Provider)

	return usecase.New(a.l, usecase.Config{
		Recognizer:           rz,
		RecognizerName:       cfg.Recognizer.Provider,
		Bindings:             bindings,
		HomeAutomationIntent: cfg.Intents.HomeAutomation,
		WeatherIntent:        cfg.Intents.Weather,
		Metrics:              rec,
	})
}

// intentCatalog describes the routable intents for classifiers that need one.
func intentCatalog(cfg *config.Config) []recognizer.IntentDescription {
	catalog := []recognizer.IntentDescription{
		{Intent: cfg.Intents.HomeAutomation, Description: "turning lights, devices or appliances on and off at home"},
		{Intent: cfg.Intents.Weather, Description: "questions about the weather or the forecast"},
	}
	for _, kb := range cfg.KnowledgeBases {
		catalog = append(catalog, recognizer.IntentDescription{
			Intent:      kb.Intent,
			Description: fmt.Sprintf("questions answered by the %s knowledge base", kb.Domain),
		})
	}
	return catalog
}
