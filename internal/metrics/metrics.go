// Package metrics exposes the console's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hms_console"

var (
	// UpstreamDuration times calls to the hospital API by operation and outcome
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of hospital API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "status"})

	PageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_renders_total",
		Help:      "Rendered console pages.",
	}, []string{"page"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Console login attempts by role and result.",
	}, []string{"role", "result"})

	// Panics counts recovered handler panics by chi route pattern
	Panics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "handler_panics_total",
		Help:      "Panics recovered while serving a console route.",
	}, []string{"route"})

	GuardRedirects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Unauthenticated requests sent back to the home page.",
	})
)
