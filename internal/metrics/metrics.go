// Package metrics exposes Prometheus counters for sync cycles.
package metrics

import (
	"net/http"

	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contact_sync"

const unknownKind = "unknown"

// Metrics holds the collectors of the adapter on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	cycles      *prometheus.CounterVec
	cycleErrors *prometheus.CounterVec
	events      *prometheus.CounterVec
	chunks      prometheus.Counter
	duration    *prometheus.HistogramVec
	lastSuccess prometheus.Gauge
}

// New registers the sync collectors together with the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Finished sync cycles by session kind and result.",
		}, []string{"kind", "result"}),
		cycleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_errors_total",
			Help:      "Failed sync cycles by error kind.",
		}, []string{"error_kind"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_events_total",
			Help:      "Change events delivered to the sync engine.",
		}, []string{"kind"}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_received_total",
			Help:      "Record chunks received from the device during slow syncs.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of sync cycles.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"result"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful sync cycle.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cycles,
		m.cycleErrors,
		m.events,
		m.chunks,
		m.duration,
		m.lastSuccess,
	)
	return m
}

// ObserveCycle records a finished cycle.
func (m *Metrics) ObserveCycle(record models.CycleRecord) {
	kind := string(record.Kind)
	if kind == "" {
		kind = unknownKind
	}

	m.cycles.WithLabelValues(kind, string(record.Result)).Inc()
	m.events.WithLabelValues(kind).Add(float64(record.Events))
	m.chunks.Add(float64(record.Chunks))

	if !record.StartedAt.IsZero() && !record.FinishedAt.Before(record.StartedAt) {
		m.duration.WithLabelValues(string(record.Result)).Observe(record.FinishedAt.Sub(record.StartedAt).Seconds())
	}

	if record.Result == models.CycleFailed {
		m.cycleErrors.WithLabelValues(string(record.ErrorKind)).Inc()
		return
	}
	m.lastSuccess.Set(float64(record.FinishedAt.Unix()))
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
