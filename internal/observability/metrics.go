package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	// Ingestion metrics
	PollsTotal           *prometheus.CounterVec
	EventsIngestedTotal  *prometheus.CounterVec
	EventsDuplicateTotal prometheus.Counter
	EventsSkippedTotal   prometheus.Counter
	StoreEvents          prometheus.Gauge
}

// NewMetrics creates and registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		PollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ghpulse_polls_total",
				Help: "Total number of feed polls by outcome",
			},
			[]string{"status"},
		),
		EventsIngestedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ghpulse_events_ingested_total",
				Help: "Total number of events appended to the store by type",
			},
			[]string{"type"},
		),
		EventsDuplicateTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ghpulse_events_duplicate_total",
				Help: "Total number of already-seen events skipped by dedup",
			},
		),
		EventsSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ghpulse_events_skipped_total",
				Help: "Total number of feed entries dropped for an unrecognized kind",
			},
		),
		StoreEvents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ghpulse_store_events",
				Help: "Number of distinct events currently in the store",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		m.PollsTotal,
		m.EventsIngestedTotal,
		m.EventsDuplicateTotal,
		m.EventsSkippedTotal,
		m.StoreEvents,
	)

	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
