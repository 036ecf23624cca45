package metrics

import "time"

// Collaborator names used as metric labels.
const (
	CollaboratorRecognizer = "recognizer"
	CollaboratorKnowledge  = "knowledge"
	CollaboratorTransport  = "transport"
)

// Route kinds used as metric labels.
const (
	RouteStructured = "structured"
	RouteQnA        = "qna"
	RouteUnknown    = "unknown"

	// IntentOther replaces the intent label of unknown routes, whose
	// identifiers come from the recognizer and are unbounded.
	IntentOther = "other"
)

// Recorder records dispatch metrics.
type Recorder interface {
	RecordRoute(kind, intent string)
	RecordCall(collaborator, target string, latency time.Duration, err error)
	RecordUpdate(transport, kind string)
}

type nopRecorder struct{}

// NewNop returns a Recorder that discards everything.
func NewNop() Recorder { return nopRecorder{} }

func (nopRecorder) RecordRoute(kind, intent string)                                    {}
func (nopRecorder) RecordCall(collaborator, target string, d time.Duration, err error) {}
func (nopRecorder) RecordUpdate(transport, kind string)                                {}
