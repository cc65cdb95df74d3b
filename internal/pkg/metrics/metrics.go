// Package metrics exposes Prometheus counters for admin actions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Transitions counts member lifecycle actions by action and outcome
	Transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kada",
			Name:      "member_transitions_total",
			Help:      "Member lifecycle actions by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	// ReportUploads counts annual report uploads by outcome
	ReportUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kada",
			Name:      "annual_report_uploads_total",
			Help:      "Annual report uploads by outcome.",
		},
		[]string{"outcome"},
	)

	// OrphansSwept counts stored report files removed by the sweeper
	OrphansSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kada",
		Name:      "annual_report_orphans_swept_total",
		Help:      "Stored report files without a record that were deleted.",
	})
)

// Outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Registry holds the application collectors plus the Go runtime ones
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		Transitions,
		ReportUploads,
		OrphansSwept,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
}
