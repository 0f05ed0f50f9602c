// Package metrics holds the Prometheus collectors of the gateway.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the gateway records. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	backendCalls    *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	inferenceResult *prometheus.CounterVec
	areasDetected   prometheus.Histogram
}

// New creates the collectors on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartcity",
			Name:      "backend_calls_total",
			Help:      "Backend calls by backend and outcome.",
		}, []string{"backend", "outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "smartcity",
			Name:      "backend_call_duration_seconds",
			Help:      "Backend call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
		inferenceResult: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartcity",
			Name:      "inference_results_total",
			Help:      "Completion engine outcomes.",
		}, []string{"outcome"}),
		areasDetected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smartcity",
			Name:      "chat_areas_detected",
			Help:      "Areas of interest detected per chat question.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		}),
	}

	reg.MustRegister(
		m.backendCalls,
		m.backendLatency,
		m.inferenceResult,
		m.areasDetected,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveBackendCall records one adapter call
func (m *Metrics) ObserveBackendCall(backend, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(backend, outcome).Inc()
	m.backendLatency.WithLabelValues(backend).Observe(elapsed.Seconds())
}

// ObserveInference records one completion engine outcome
func (m *Metrics) ObserveInference(outcome string) {
	if m == nil {
		return
	}
	m.inferenceResult.WithLabelValues(outcome).Inc()
}

// ObserveAreas records how many areas a chat question resolved to
func (m *Metrics) ObserveAreas(n int) {
	if m == nil {
		return
	}
	m.areasDetected.Observe(float64(n))
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
