package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_events_total",
			Help: "Total number of workflow events by type",
		},
		[]string{"type"},
	)

	HubSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workflow_events_subscribers",
			Help: "Number of live telemetry subscribers",
		},
	)

	HubDroppedEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workflow_events_dropped_total",
			Help: "Events dropped because a subscriber was too slow",
		},
	)
)
