// Package metrics expone métricas Prometheus del servicio:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//   - schedule_generation_outcomes_total{outcome}
//   - rate_limited_requests_total
//
// Se registran en el registry default al inicializar el paquete.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ScheduleOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_generation_outcomes_total",
			Help: "Schedule generation results by outcome (success, unconfigured, quota_exceeded, upstream_error, transport_failure, parse_failure, cached)",
		},
		[]string{"outcome"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the AI rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ScheduleOutcomes)
	prometheus.MustRegister(RateLimited)
}
