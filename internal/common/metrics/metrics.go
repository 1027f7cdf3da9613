// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_step_transitions_total",
			Help: "Total number of form step transitions",
		},
		[]string{"direction"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_validation_failures_total",
			Help: "Total number of rejected steps or submissions",
		},
		[]string{"stage"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_submissions_total",
			Help: "Total number of completed submissions by result view",
		},
		[]string{"view"},
	)

	LocalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eligibility_local_score",
			Help:    "Distribution of locally computed eligibility scores",
			Buckets: []float64{15, 30, 45, 60, 75, 90, 105, 120, 135},
		},
	)

	ScoringAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "eligibility_scoring_api_duration_seconds",
			Help: "Duration of remote scoring API calls in seconds",
		},
		[]string{"outcome"},
	)

	PersistenceWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_persistence_writes_total",
			Help: "Total number of saved-session writes by operation",
		},
		[]string{"op"},
	)
)
