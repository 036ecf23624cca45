package dispatch

import "dispatch-bot/internal/knowledge"

// Domain labels of the locally interpreted intents.
const (
	DomainHomeAutomation = "HomeAutomation"
	DomainWeather        = "ProcessWeather"
)

// Route is the handler chosen for a top intent. The set of implementations
// is closed: StructuredRoute, QnARoute and UnknownRoute.
type Route interface {
	route()
}

// StructuredRoute formats the recognizer's own output for a sub-model.
type StructuredRoute struct {
	Intent string
	Domain string
}

// QnARoute forwards the turn to a bound knowledge base.
type QnARoute struct {
	Binding knowledge.Binding
}

// UnknownRoute is taken when no handler is registered for the intent.
type UnknownRoute struct {
	Intent string
}

func (StructuredRoute) route() {}
func (QnARoute) route()        {}
func (UnknownRoute) route()    {}
