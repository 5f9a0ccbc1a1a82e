package mcpserver

import "github.com/prometheus/client_golang/prometheus"

var toolCallsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "ollama_mcp",
		Name:      "tool_calls_total",
		Help:      "Total number of tool calls and resource reads by outcome",
	},
	[]string{"tool", "outcome"},
)

func init() {
	prometheus.MustRegister(toolCallsTotal)
}
