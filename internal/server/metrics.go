package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcomes recorded by the conversions counter.
const (
	outcomeOK          = "ok"
	outcomeDiagnostics = "diagnostics"
	outcomeRejected    = "rejected"
	outcomeFailed      = "failed"
)

// metrics holds the service collectors on a private registry.
type metrics struct {
	registry    *prometheus.Registry
	duration    *prometheus.HistogramVec
	conversions *prometheus.CounterVec
	nodes       prometheus.Histogram
	cache       *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &metrics{
		registry: registry,
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lexical2html_http_request_duration_seconds",
				Help:    "A histogram of duration for requests.",
				Buckets: []float64{1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"code", "handler", "method"},
		),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexical2html_conversions_total",
				Help: "Conversions by outcome.",
			},
			[]string{"outcome"},
		),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lexical2html_document_nodes",
			Help:    "Nodes per converted document.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		}),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexical2html_cache_requests_total",
				Help: "Result cache lookups by result.",
			},
			[]string{"result"},
		),
	}
	registry.MustRegister(m.duration, m.conversions, m.nodes, m.cache)
	return m
}

// instrument wraps handler with the request duration histogram.
func (m *metrics) instrument(label string, handler http.HandlerFunc) http.HandlerFunc {
	observer := m.duration.MustCurryWith(prometheus.Labels{"handler": label})
	return promhttp.InstrumentHandlerDuration(observer, handler)
}

// handler serves the registry in the Prometheus text format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
