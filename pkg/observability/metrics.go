// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the chatshim bridge.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// BridgeRequestsTotal counts bridge invocations by mode and outcome.
	// Outcome is "ok" or the error kind (envelope_parse, transport, upstream_parse).
	BridgeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatshim_bridge_requests_total",
			Help: "Bridge invocations",
		},
		[]string{"mode", "outcome"},
	)

	// BridgeDuration records the full envelope round trip in seconds by mode.
	BridgeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatshim_bridge_duration_seconds",
			Help:    "Bridge round trip duration",
			Buckets: LLMBuckets,
		},
		[]string{"mode"},
	)

	// TokensTotal counts backend-reported tokens by direction (input/output).
	TokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatshim_tokens_total",
			Help: "Token count",
		},
		[]string{"direction"},
	)

	// HTTPRequestsTotal counts all HTTP requests by method and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatshim_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "status"},
	)

	// HTTPRequestDuration records HTTP request duration in seconds by method.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatshim_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(
		BridgeRequestsTotal,
		BridgeDuration,
		TokensTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// RecordBridge records one bridge invocation.
func RecordBridge(mode, outcome string, seconds float64) {
	BridgeRequestsTotal.WithLabelValues(mode, outcome).Inc()
	BridgeDuration.WithLabelValues(mode).Observe(seconds)
}

// RecordTokens records backend-reported token usage.
func RecordTokens(input, output int) {
	if input > 0 {
		TokensTotal.WithLabelValues("input").Add(float64(input))
	}
	if output > 0 {
		TokensTotal.WithLabelValues("output").Add(float64(output))
	}
}
