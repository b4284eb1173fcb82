package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workflows_started_total",
			Help: "Total number of started order workflows",
		},
	)

	WorkflowsClosedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflows_closed_total",
			Help: "Total number of closed order workflows by final order status",
		},
		[]string{"status"},
	)

	WorkflowsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workflows_running",
			Help: "Number of order workflows currently running in this process",
		},
	)

	WorkflowSignalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_signals_total",
			Help: "Total number of cancellation signals by outcome",
		},
		[]string{"outcome"},
	)

	WorkflowDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "workflow_duration_seconds",
			Help:    "Wall time from workflow start to close",
			Buckets: []float64{1, 5, 10, 30, 60, 90, 120, 300, 600},
		},
	)
)
