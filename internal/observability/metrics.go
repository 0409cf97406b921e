package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "infra_ingest"

// Metrics holds the Prometheus counters, histograms, and gauges for ingestion.
type Metrics struct {
	FilesConsumed  prometheus.Counter
	EventsProduced prometheus.Counter
	ParseErrors    prometheus.Counter
	// Diagnostics counts lines skipped in lenient mode: RK, LB, EOF or row.
	Diagnostics     *prometheus.CounterVec
	Investigations  *prometheus.CounterVec // labels: method
	PipelineRunning prometheus.Gauge

	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
	FileBytes               prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		FilesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_consumed_total",
			Help:      "Total raw files read from the source topic or directory.",
		}),
		EventsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_produced_total",
			Help:      "Total investigation events written to sinks.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total files rejected by decoding or strict parsing.",
		}),
		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Lines skipped in lenient mode by kind.",
		}, []string{"code"}),
		Investigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investigations_total",
			Help:      "Parsed investigations by method token.",
		}, []string{"method"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of files per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		FileBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_bytes",
			Help:      "Size of raw files before decoding.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FilesConsumed,
		m.EventsProduced,
		m.ParseErrors,
		m.Diagnostics,
		m.Investigations,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.FileBytes,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all metrics with reg. One-shot commands pass a
// private registry since nothing scrapes them.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered with a fresh registry to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}
