package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// PipelineMetrics records fetch, cache and normalization telemetry. It
// implements the pipeline observer port.
type PipelineMetrics struct {
	registry *prometheus.Registry
	service  string

	fetchTotal       *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	cacheEvents      *prometheus.CounterVec
	rowsTotal        *prometheus.CounterVec
	parseFailures    *prometheus.CounterVec
	schemaMismatch   *prometheus.CounterVec
	snapshotRows     prometheus.Gauge
	snapshotDegraded prometheus.Gauge
}

// NewPipelineMetrics registers the pipeline collectors. Passing a registry
// joins an existing metrics endpoint; nil creates a standalone registry.
func NewPipelineMetrics(service string, registry *prometheus.Registry) *PipelineMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	fetchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "fetch_total",
			Help:      "Total source fetch attempts by source and status.",
		},
		[]string{"service", "source", "status"},
	)
	fetchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "fetch_duration_seconds",
			Help:      "Source fetch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "source"},
	)
	cacheEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "cache_events_total",
			Help:      "Snapshot cache events by kind.",
		},
		[]string{"service", "event"},
	)
	rowsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "rows_total",
			Help:      "Normalized table rows by outcome.",
		},
		[]string{"service", "outcome"},
	)
	parseFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "field_parse_failures_total",
			Help:      "Cells that failed numeric or date coercion, by field.",
		},
		[]string{"service", "field"},
	)
	schemaMismatch := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "schema_mismatch_total",
			Help:      "Normalization passes missing a source column, by field.",
		},
		[]string{"service", "field"},
	)
	snapshotRows := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "snapshot_rows",
			Help:      "Records in the most recently stored snapshot.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	snapshotDegraded := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "emi",
			Subsystem: "pipeline",
			Name:      "snapshot_degraded",
			Help:      "1 when the most recent snapshot carries a fetch failure cause.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		fetchTotal,
		fetchDuration,
		cacheEvents,
		rowsTotal,
		parseFailures,
		schemaMismatch,
		snapshotRows,
		snapshotDegraded,
	)

	return &PipelineMetrics{
		registry:         registry,
		service:          service,
		fetchTotal:       fetchTotal,
		fetchDuration:    fetchDuration,
		cacheEvents:      cacheEvents,
		rowsTotal:        rowsTotal,
		parseFailures:    parseFailures,
		schemaMismatch:   schemaMismatch,
		snapshotRows:     snapshotRows,
		snapshotDegraded: snapshotDegraded,
	}
}

// Registry exposes the underlying registry for standalone use.
func (m *PipelineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PipelineMetrics) FetchAttempted(source string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.fetchTotal.WithLabelValues(m.service, source, status).Inc()
	m.fetchDuration.WithLabelValues(m.service, source).Observe(elapsed.Seconds())
}

func (m *PipelineMetrics) CacheEvent(event string) {
	m.cacheEvents.WithLabelValues(m.service, event).Inc()
}

func (m *PipelineMetrics) TableNormalized(report domain.NormalizeReport) {
	kept := report.RowsIn - report.RowsDropped
	if kept > 0 {
		m.rowsTotal.WithLabelValues(m.service, "kept").Add(float64(kept))
	}
	if report.RowsDropped > 0 {
		m.rowsTotal.WithLabelValues(m.service, "dropped").Add(float64(report.RowsDropped))
	}
	for field, count := range report.ParseFailures {
		m.parseFailures.WithLabelValues(m.service, field).Add(float64(count))
	}
	for _, field := range report.MissingColumns {
		m.schemaMismatch.WithLabelValues(m.service, field).Inc()
	}
}

func (m *PipelineMetrics) SnapshotStored(records int, degraded bool) {
	m.snapshotRows.Set(float64(records))
	if degraded {
		m.snapshotDegraded.Set(1)
		return
	}
	m.snapshotDegraded.Set(0)
}
