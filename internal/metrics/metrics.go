package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline outcome label values besides the apperrors cause labels.
const OutcomeSuccess = "success"

// Remote API metrics
var (
	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvmaze_request_duration_seconds",
			Help:    "Duration of TVmaze API requests, including body decoding.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Pipeline metrics
var (
	PipelineFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_fetches_total",
			Help: "Total number of pipeline fetches by outcome (success, transport, status, malformed).",
		},
		[]string{"pipeline", "outcome"},
	)

	PipelineStaleResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stale_results_total",
			Help: "Total number of fetch results discarded because a newer request superseded them.",
		},
		[]string{"pipeline"},
	)

	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "region_renders_total",
			Help: "Total number of display region renders.",
		},
		[]string{"region"},
	)
)

// HTTP and session metrics
var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the web front end.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "code"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "page_sessions_active",
			Help: "Number of live WebSocket page sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RemoteRequestDuration,
		PipelineFetchesTotal,
		PipelineStaleResultsTotal,
		RendersTotal,
		HTTPRequestDuration,
		ActiveSessions,
	)
}
