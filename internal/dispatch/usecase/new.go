package usecase

import (
	"errors"
	"fmt"

	"dispatch-bot/internal/dispatch"
	"dispatch-bot/internal/knowledge"
	"dispatch-bot/internal/metrics"
	"dispatch-bot/internal/recognizer"
	pkgLog "dispatch-bot/pkg/log"
)

// Config holds the collaborators of the dispatcher. It is built once at
// startup and never changed afterwards.
type Config struct {
	Recognizer     recognizer.Recognizer
	RecognizerName string // metrics label, e.g. "luis"
	Bindings       *knowledge.Bindings

	HomeAutomationIntent string
	WeatherIntent        string

	// Metrics is optional.
	Metrics metrics.Recorder
}

type implUseCase struct {
	l              pkgLog.Logger
	recognizer     recognizer.Recognizer
	recognizerName string
	bindings       *knowledge.Bindings
	structured     map[string]dispatch.StructuredRoute
	metrics        metrics.Recorder
}

// New creates a new dispatch UseCase instance.
func New(l pkgLog.Logger, cfg Config) (dispatch.UseCase, error) {
	if cfg.Recognizer == nil {
		return nil, errors.New("dispatch: recognizer is required")
	}

	structured := make(map[string]dispatch.StructuredRoute, 2)
	for _, r := range []dispatch.StructuredRoute{
		{Intent: cfg.HomeAutomationIntent, Domain: dispatch.DomainHomeAutomation},
		{Intent: cfg.WeatherIntent, Domain: dispatch.DomainWeather},
	} {
		if r.Intent == "" {
			return nil, fmt.Errorf("dispatch: intent for %s is required", r.Domain)
		}
		if _, dup := structured[r.Intent]; dup {
			return nil, fmt.Errorf("dispatch: intent %s is bound twice", r.Intent)
		}
		if _, ok := cfg.Bindings.Lookup(r.Intent); ok {
			return nil, fmt.Errorf("dispatch: intent %s is bound to both %s and a knowledge base", r.Intent, r.Domain)
		}
		structured[r.Intent] = r
	}

	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.NewNop()
	}

	return &implUseCase{
		l:              l,
		recognizer:     cfg.Recognizer,
		recognizerName: cfg.RecognizerName,
		bindings:       cfg.Bindings,
		structured:     structured,
		metrics:        rec,
	}, nil
}
