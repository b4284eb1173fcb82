package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateLimitExceededTotal считает отклонённые запросы. Маршрут берётся из
// шаблона gorilla/mux, поэтому id заказа не раздувает кардинальность.
var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "fulfillment",
		Subsystem: "http",
		Name:      "rate_limit_exceeded_total",
		Help:      "Total number of workflow requests rejected due to rate limiting",
	},
	[]string{"method", "route"},
)
