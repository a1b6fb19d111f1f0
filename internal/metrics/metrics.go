// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rgehrsitz/finplan/internal/domain"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finplan_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finplan_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	TaxEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finplan_tax_evaluations_total",
			Help: "Total number of tax evaluations by recommended regime",
		},
		[]string{"best"},
	)

	AdvisoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finplan_advisory_requests_total",
			Help: "Total number of advisor calls by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveDecision records one evaluated decision
func ObserveDecision(d *domain.TaxDecision) {
	if d == nil {
		return
	}
	TaxEvaluationsTotal.WithLabelValues(string(d.Best)).Inc()

	if d.Advisory == nil {
		return
	}
	outcome := "unavailable"
	if d.Advisory.Available {
		outcome = "ok"
	}
	AdvisoryRequestsTotal.WithLabelValues(outcome).Inc()
}
