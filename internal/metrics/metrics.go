// Package metrics registers the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finx_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finx_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	VisibilityDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finx_visibility_decisions_total",
		Help: "Record visibility decisions by outcome.",
	}, []string{"result"})

	PermissionMetaLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finx_permission_meta_loads_total",
		Help: "Permission meta loads that hit storage.",
	})
)
