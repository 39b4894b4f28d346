package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routerMetrics contains Prometheus metrics for route dispatch.
type routerMetrics struct {
	matchesTotal    *prometheus.CounterVec
	notFoundTotal   prometheus.Counter
	errorsConverted prometheus.Counter
}

var (
	routerMetricsInstance *routerMetrics
	routerMetricsOnce     sync.Once
)

// getRouterMetrics returns the singleton router metrics instance.
func getRouterMetrics() *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInstance = &routerMetrics{
			matchesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "wellrested",
					Subsystem: "router",
					Name:      "route_matches_total",
					Help:      "Total number of matched requests by route kind",
				},
				[]string{"kind"},
			),
			notFoundTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "wellrested",
					Subsystem: "router",
					Name:      "route_not_found_total",
					Help:      "Total number of requests that matched no route",
				},
			),
			errorsConverted: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "wellrested",
					Subsystem: "router",
					Name:      "http_errors_converted_total",
					Help:      "Total number of dispatch errors converted to error responses",
				},
			),
		}
	})
	return routerMetricsInstance
}
