// Package telemetry provides logging setup and Prometheus metrics for the client core
// and the mock service.
//
// # Prometheus Metrics Endpoint
//
// All metrics are registered against the default Prometheus registry. The mock service
// serves them on a side-channel HTTP server:
//
//	GET http://<host>:<NGOCONNECT_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090. The CLI records metrics but does not listen.
//
// # Metric Groups
//
//   - Command counters, latency histograms, and in-flight gauges (labelled by command kind)
//   - Stale settlement discards (when fencing is enabled)
//   - Session lifecycle events (login, logout, restore)
//   - HTTP request counters and latency histograms for the mock service
//
// # Label Cardinality
//
// Command metrics are labelled by the fixed command kind ("ngo/search",
// "requirement/approve"), never by entity ids or filter text. HTTP metrics use the gin
// route template rather than the raw URL.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command outcomes used as the "outcome" label of CommandsTotal
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeSuperseded = "superseded"
)

// Command metrics, recorded by the dispatcher for every command.
//
// CommandsTotal is a CounterVec with labels {kind, outcome}.
//
// Example PromQL queries:
//   - Failure ratio per kind:  sum by (kind) (rate(commands_total{outcome="failure"}[5m])) / sum by (kind) (rate(commands_total[5m]))
//
// CommandDuration is a HistogramVec with label {kind} measuring begin-to-settle time,
// which is dominated by the remote round trip.
//
// CommandsInFlight is a GaugeVec with label {kind}; more than one in flight for the
// same kind is where last-write-wins (or fencing) applies.
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commands_total",
			Help: "Total number of settled commands, by command kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_duration_seconds",
			Help:    "Histogram of command latencies from begin to settlement, by command kind.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	CommandsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "commands_in_flight",
			Help: "Number of commands currently awaiting settlement, by command kind.",
		},
		[]string{"kind"},
	)

	StaleSettlementsDiscardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stale_settlements_discarded_total",
			Help: "Total number of settlements dropped because a newer command of the same kind was issued.",
		},
		[]string{"kind"},
	)
)

// SessionEventsTotal is a CounterVec with label {event}: login, login_failed, logout,
// restore, restore_rejected, persist_failed.
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "session_events_total",
		Help: "Total number of session lifecycle events, by event.",
	},
	[]string{"event"},
)

// HTTP metrics for the mock service, labelled by method, route template and status code.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)
