package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollama_mcp",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the Ollama backend",
		},
		[]string{"endpoint", "status"},
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ollama_mcp",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the Ollama backend in seconds",
			// generation and pulls run for minutes
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal, upstreamRequestDuration)
}

// observe records one finished upstream call. code 0 means no response.
func observe(endpoint string, code int, start time.Time) {
	status := "error"
	if code > 0 {
		status = strconv.Itoa(code)
	}
	upstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
