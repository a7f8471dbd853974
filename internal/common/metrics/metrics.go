// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Total number of user queries processed, by resolved intent",
		},
		[]string{"intent"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_pipeline_stage_duration_seconds",
			Help: "Duration of each assistant pipeline stage in seconds",
		},
		[]string{"stage"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_search_requests_total",
			Help: "Total number of web search requests, by outcome",
		},
		[]string{"status"},
	)

	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generation_requests_total",
			Help: "Total number of model invocations, by outcome",
		},
		[]string{"status"},
	)

	FallbackResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_fallback_responses_total",
			Help: "Total number of apologetic fallback responses returned",
		},
	)
)
