package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Batch metrics
	BatchesCreated     *prometheus.CounterVec
	TransfersAttached  prometheus.Counter
	TransferAmount     prometheus.Histogram
	ValidationFailures *prometheus.CounterVec

	// Document metrics
	DocumentsGenerated *prometheus.CounterVec
	DocumentBytes      prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Redis metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics and registers them with the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BatchesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosepa_batches_created_total",
				Help: "Total number of payment batches created",
			},
			[]string{"type"},
		),
		TransfersAttached: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosepa_transfers_attached_total",
			Help: "Total number of transfers attached to batches",
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosepa_transfer_amount_cents",
			Help:    "Transfer amounts in minor currency units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosepa_validation_failures_total",
				Help: "Total number of rejected configuration values",
			},
			[]string{"operation"},
		),
		DocumentsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosepa_documents_generated_total",
				Help: "Total number of pain documents generated",
			},
			[]string{"format"},
		),
		DocumentBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosepa_document_bytes",
			Help:    "Size of generated pain documents in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosepa_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gosepa_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosepa_document_cache_hits_total",
			Help: "Total number of document cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosepa_document_cache_misses_total",
			Help: "Total number of document cache misses",
		}),
	}
}
