// Package metrics exposes Prometheus counters for the publishing
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// WebhookDeliveries counts webhook notifications received
	WebhookDeliveries prometheus.Counter
	// ChangesListedTotal counts change events fetched from Drive
	ChangesListedTotal prometheus.Counter
	// PostsPublishedTotal counts successful post upserts
	PostsPublishedTotal prometheus.Counter
	// PublishFailuresTotal counts per-document publish failures
	PublishFailuresTotal prometheus.Counter
	// DrainFailuresTotal counts whole-drain failures
	DrainFailuresTotal prometheus.Counter
	// WatchesEstablishedTotal counts watch channel registrations
	WatchesEstablishedTotal prometheus.Counter
	// HTTPRequestsTotal counts HTTP requests by endpoint and status
	HTTPRequestsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var _ driven.MetricsRecorder = (*Metrics)(nil)

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		WebhookDeliveries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_deliveries_total",
				Help:      "Total number of webhook notifications received",
			},
		),
		ChangesListedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "changes_listed_total",
				Help:      "Total number of change events fetched from Drive",
			},
		),
		PostsPublishedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posts_published_total",
				Help:      "Total number of posts published or republished",
			},
		),
		PublishFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_failures_total",
				Help:      "Total number of documents that failed to publish",
			},
		),
		DrainFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "drain_failures_total",
				Help:      "Total number of change drains that failed outright",
			},
		),
		WatchesEstablishedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "watches_established_total",
				Help:      "Total number of Drive watch channels established",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"endpoint", "method", "status"},
		),
	}

	registry.MustRegister(
		m.WebhookDeliveries,
		m.ChangesListedTotal,
		m.PostsPublishedTotal,
		m.PublishFailuresTotal,
		m.DrainFailuresTotal,
		m.WatchesEstablishedTotal,
		m.HTTPRequestsTotal,
	)

	return m
}

// Handler returns a Prometheus handler for these metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WebhookDelivery records a received webhook notification.
func (m *Metrics) WebhookDelivery() {
	m.WebhookDeliveries.Inc()
}

// ChangesListed records change events fetched from the source.
func (m *Metrics) ChangesListed(n int) {
	m.ChangesListedTotal.Add(float64(n))
}

// PostPublished records a successful publish.
func (m *Metrics) PostPublished() {
	m.PostsPublishedTotal.Inc()
}

// PublishFailure records a per-document publish failure.
func (m *Metrics) PublishFailure() {
	m.PublishFailuresTotal.Inc()
}

// DrainFailure records a drain that failed before processing events.
func (m *Metrics) DrainFailure() {
	m.DrainFailuresTotal.Inc()
}

// WatchEstablished records a watch channel registration.
func (m *Metrics) WatchEstablished() {
	m.WatchesEstablishedTotal.Inc()
}

// RecordHTTPRequest records an HTTP request outcome.
func (m *Metrics) RecordHTTPRequest(endpoint, method, status string) {
	m.HTTPRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}
