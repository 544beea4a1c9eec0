// Package metrics exposes Prometheus metrics for the import pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all importer metrics.
	MetricsNamespace = "gorecipe"

	// MetricsSubsystem is the subsystem for import metrics.
	MetricsSubsystem = "importer"
)

// Metrics holds all Prometheus metrics for the importer.
type Metrics struct {
	ImportsTotal          *prometheus.CounterVec
	ImportDurationSeconds *prometheus.HistogramVec
	IngredientsParsed     prometheus.Histogram
	TranscriptFallbacks   *prometheus.CounterVec
	FetchBytes            prometheus.Histogram
}

// New creates and registers all importer metrics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		ImportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "imports_total",
				Help:      "Total number of import attempts",
			},
			[]string{"strategy", "status"},
		),
		ImportDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "import_duration_seconds",
				Help:      "Duration of one import end to end",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		IngredientsParsed: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "ingredients_parsed",
				Help:      "Parsed ingredient count per successful import",
				Buckets:   []float64{0, 2, 5, 10, 15, 20, 30, 50},
			},
		),
		TranscriptFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "transcript_fallbacks_total",
				Help:      "Transcript acquisition outcomes by method",
			},
			[]string{"method"},
		),
		FetchBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "fetch_bytes",
				Help:      "Fetched page size in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}
}

// RecordImport records one finished import attempt.
func (m *Metrics) RecordImport(strategy, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ImportsTotal.WithLabelValues(strategy, status).Inc()
	m.ImportDurationSeconds.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordIngredients records the parsed ingredient count of a success.
func (m *Metrics) RecordIngredients(count int) {
	if m == nil {
		return
	}
	m.IngredientsParsed.Observe(float64(count))
}

// RecordTranscriptMethod records which transcript method won.
func (m *Metrics) RecordTranscriptMethod(method string) {
	if m == nil {
		return
	}
	m.TranscriptFallbacks.WithLabelValues(method).Inc()
}
