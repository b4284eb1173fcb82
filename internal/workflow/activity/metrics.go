package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActivityAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_attempts_total",
			Help: "Total number of activity attempts, including retries",
		},
		[]string{"activity"},
	)

	ActivityRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_retries_total",
			Help: "Total number of activity invocations that needed more than one attempt",
		},
		[]string{"activity", "outcome"},
	)

	ActivityDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "activity_duration_seconds",
			Help:    "Duration of activity invocations including retries",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"activity", "outcome"},
	)
)
