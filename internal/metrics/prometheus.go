// Package metrics exports dispatch metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch_bot"

// PrometheusRecorder is the Prometheus backed Recorder.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	routes       *prometheus.CounterVec
	callLatency  *prometheus.HistogramVec
	callFailures *prometheus.CounterVec
	updates      *prometheus.CounterVec
}

// Config configures the Prometheus recorder.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}
}

// NewPrometheus creates a new Prometheus recorder.
func NewPrometheus(cfg Config) *PrometheusRecorder {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &PrometheusRecorder{registry: registry}

	r.routes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "routes_total",
			Help:      "Total number of dispatched turns by route kind and top intent",
		},
		[]string{"kind", "intent"},
	)

	r.callLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "collaborator",
			Name:      "latency_seconds",
			Help:      "Latency of calls to external collaborators in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"collaborator", "target"},
	)

	r.callFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collaborator",
			Name:      "failures_total",
			Help:      "Total number of failed calls to external collaborators",
		},
		[]string{"collaborator", "target"},
	)

	r.updates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "updates_total",
			Help:      "Total number of inbound transport updates by kind",
		},
		[]string{"transport", "kind"},
	)

	registry.MustRegister(r.routes, r.callLatency, r.callFailures, r.updates)
	return r
}

// RecordRoute counts one dispatched turn.
func (r *PrometheusRecorder) RecordRoute(kind, intent string) {
	r.routes.WithLabelValues(kind, intent).Inc()
}

// RecordCall records the latency and outcome of a collaborator call.
func (r *PrometheusRecorder) RecordCall(collaborator, target string, latency time.Duration, err error) {
	r.callLatency.WithLabelValues(collaborator, target).Observe(latency.Seconds())
	if err != nil {
		r.callFailures.WithLabelValues(collaborator, target).Inc()
	}
}

// RecordUpdate counts one inbound update.
func (r *PrometheusRecorder) RecordUpdate(transport, kind string) {
	r.updates.WithLabelValues(transport, kind).Inc()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
