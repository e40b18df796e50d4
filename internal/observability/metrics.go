// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	TrackingEventsReceived prometheus.Counter
	TrackingEventsStored   prometheus.Counter
	TrackingEventsDropped  *prometheus.CounterVec
	WSReconnects           prometheus.Counter
	FetchPagesTotal        *prometheus.CounterVec
	FetchLatency           *prometheus.HistogramVec

	// Normalization metrics
	RecordsProcessed        *prometheus.CounterVec
	RecordsEmitted          *prometheus.CounterVec
	RecordsSkipped          *prometheus.CounterVec
	PurchaseValuesDefaulted prometheus.Counter

	// Export metrics
	ExportRunsTotal prometheus.Counter
	ExportErrors    *prometheus.CounterVec
	ExportDuration  *prometheus.HistogramVec

	// Health metrics
	LastSuccessfulExport prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "recsys_export_lab"
	}

	return &Metrics{
		// Ingestion metrics
		TrackingEventsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "tracking_events_received_total",
			Help:      "Total number of tracking events received from the collector",
		}),
		TrackingEventsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "tracking_events_stored_total",
			Help:      "Total number of tracking events stored to database",
		}),
		TrackingEventsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "tracking_events_dropped_total",
			Help:      "Total number of tracking events dropped by reason",
		}, []string{"reason"}),
		WSReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "ws_reconnects_total",
			Help:      "Total number of WebSocket reconnect attempts",
		}),
		FetchPagesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "fetch_pages_total",
			Help:      "Total number of source pages fetched by source",
		}, []string{"source"}),
		FetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "fetch_latency_seconds",
			Help:      "Source page fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),

		// Normalization metrics
		RecordsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "records_processed_total",
			Help:      "Total number of raw records processed by source",
		}, []string{"source"}),
		RecordsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "records_emitted_total",
			Help:      "Total number of interaction events emitted by source",
		}, []string{"source"}),
		RecordsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "records_skipped_total",
			Help:      "Total number of malformed records skipped by source",
		}, []string{"source"}),
		PurchaseValuesDefaulted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "purchase_values_defaulted_total",
			Help:      "Total number of purchases scored with the default event value",
		}),

		// Export metrics
		ExportRunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "runs_total",
			Help:      "Total number of export runs",
		}),
		ExportErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "errors_total",
			Help:      "Total number of export errors by source",
		}, []string{"source"}),
		ExportDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "Export phase duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"phase"}),

		// Health metrics
		LastSuccessfulExport: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_export_timestamp",
			Help:      "Unix timestamp of last successful export run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordTrackingEventReceived increments the tracking events received counter.
func RecordTrackingEventReceived() {
	DefaultMetrics.TrackingEventsReceived.Inc()
}

// RecordTrackingEventStored increments the tracking events stored counter.
func RecordTrackingEventStored() {
	DefaultMetrics.TrackingEventsStored.Inc()
}

// RecordTrackingEventDropped records a dropped tracking event.
func RecordTrackingEventDropped(reason string) {
	DefaultMetrics.TrackingEventsDropped.WithLabelValues(reason).Inc()
}

// RecordWSReconnect increments the WebSocket reconnect counter.
func RecordWSReconnect() {
	DefaultMetrics.WSReconnects.Inc()
}

// RecordFetchPage records one fetched source page and its latency.
func RecordFetchPage(source string, seconds float64) {
	DefaultMetrics.FetchPagesTotal.WithLabelValues(source).Inc()
	DefaultMetrics.FetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordNormalization records per-source normalization outcomes.
func RecordNormalization(source string, processed, emitted, skipped int) {
	DefaultMetrics.RecordsProcessed.WithLabelValues(source).Add(float64(processed))
	DefaultMetrics.RecordsEmitted.WithLabelValues(source).Add(float64(emitted))
	DefaultMetrics.RecordsSkipped.WithLabelValues(source).Add(float64(skipped))
}

// RecordPurchaseValuesDefaulted adds to the defaulted purchase counter.
func RecordPurchaseValuesDefaulted(n int) {
	DefaultMetrics.PurchaseValuesDefaulted.Add(float64(n))
}

// RecordExportRun records an export run with its per-source errors.
func RecordExportRun(duration float64, sourcesWithErrors []string) {
	DefaultMetrics.ExportRunsTotal.Inc()
	DefaultMetrics.ExportDuration.WithLabelValues("pipeline").Observe(duration)
	for _, source := range sourcesWithErrors {
		DefaultMetrics.ExportErrors.WithLabelValues(source).Inc()
	}
}
