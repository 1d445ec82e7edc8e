// Package metrics counts dispatched actions and squid patch runs. The
// counters live in a private registry so a one-shot run can write them to a
// node-exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"uyuni-actions/internal/types"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	Registry = prometheus.NewRegistry()

	ActionsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uyuni_actions_dispatched_total",
			Help: "Total number of dispatched actions by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	ActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uyuni_actions_duration_seconds",
			Help:    "Action handler duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	SquidPatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uyuni_squid_patches_total",
			Help: "Total number of squid.conf patch runs by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(ActionsDispatched)
	Registry.MustRegister(ActionDuration)
	Registry.MustRegister(SquidPatches)
}

// ObserveAction records one handler call.
func ObserveAction(method string, outcome string, seconds float64) {
	ActionsDispatched.WithLabelValues(method, outcome).Inc()
	ActionDuration.WithLabelValues(method).Observe(seconds)
}

func ObservePatch(outcome types.PatchOutcome) {
	SquidPatches.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile dumps the registry in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
