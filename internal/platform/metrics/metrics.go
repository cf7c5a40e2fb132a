package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every collector name.
const DefaultNamespace = "txn"

// Metrics holds all application metrics. A nil *Metrics records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Report metrics
	ReportsTotal         *prometheus.CounterVec
	ReportDuration       prometheus.Histogram
	ChunksProcessedTotal prometheus.Counter
	RecordsAggregated    prometheus.Counter
	ChunkJobsInFlight    prometheus.Gauge
	ReportPublishTotal   *prometheus.CounterVec

	// Seeder metrics
	RecordsSeededTotal prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// Report metrics
		ReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "runs_total",
				Help:      "Total number of report runs",
			},
			[]string{"currency", "status"}, // status: success, error
		),
		ReportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "duration_seconds",
				Help:      "Report aggregation duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		ChunksProcessedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "chunks_processed_total",
				Help:      "Total number of chunk jobs that completed",
			},
		),
		RecordsAggregated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "records_aggregated_total",
				Help:      "Total number of records folded into report sums",
			},
		),
		ChunkJobsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "chunk_jobs_in_flight",
				Help:      "Current number of running chunk jobs",
			},
		),
		ReportPublishTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "publish_total",
				Help:      "Total number of report-completed events published",
			},
			[]string{"status"},
		),

		// Seeder metrics
		RecordsSeededTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "seed",
				Name:      "records_total",
				Help:      "Total number of generated records inserted",
			},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordReport records the outcome of one report run.
func (m *Metrics) RecordReport(currency string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ReportsTotal.WithLabelValues(currency, status).Inc()
	m.ReportDuration.Observe(duration.Seconds())
}

// ChunkStarted marks a chunk job as running.
func (m *Metrics) ChunkStarted() {
	if m == nil {
		return
	}
	m.ChunkJobsInFlight.Inc()
}

// ChunkFinished marks a chunk job as done; records is zero for failed jobs.
func (m *Metrics) ChunkFinished(records int64, err error) {
	if m == nil {
		return
	}
	m.ChunkJobsInFlight.Dec()
	if err != nil {
		return
	}
	m.ChunksProcessedTotal.Inc()
	m.RecordsAggregated.Add(float64(records))
}

// RecordPublish records a report-completed publish attempt.
func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ReportPublishTotal.WithLabelValues(status).Inc()
}

// RecordSeeded counts inserted generated records.
func (m *Metrics) RecordSeeded(n int64) {
	if m == nil {
		return
	}
	m.RecordsSeededTotal.Add(float64(n))
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
