package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Google API client metrics
	GoogleAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_googleapi_requests_total",
			Help: "Total number of Google API requests",
		},
		[]string{"service", "endpoint", "status"}, // status: success|auth_error|api_error|transport_error|timeout|decode_error
	)

	GoogleAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_googleapi_request_duration_seconds",
			Help:    "Google API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"service", "endpoint"},
	)

	// Agent metrics
	AgentTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_agent_turns_total",
			Help: "Total number of conversation turns processed by agents",
		},
		[]string{"agent", "status"}, // status: success|error
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_agent_tokens_total",
			Help: "Total tokens used by agents",
		},
		[]string{"agent", "type"}, // type: input|output
	)

	// Tool metrics
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"}, // status: success|error
	)
)

func init() {
	prometheus.MustRegister(
		GoogleAPICalls,
		GoogleAPILatency,
		AgentTurns,
		AgentTokens,
		ToolCalls,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveGoogleAPICall records one request against a Google API surface
func ObserveGoogleAPICall(service, endpoint, status string, duration time.Duration) {
	GoogleAPICalls.WithLabelValues(service, endpoint, status).Inc()
	GoogleAPILatency.WithLabelValues(service, endpoint).Observe(duration.Seconds())
}

// RecordToolCall records one tool invocation outcome
func RecordToolCall(tool string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ToolCalls.WithLabelValues(tool, status).Inc()
}
