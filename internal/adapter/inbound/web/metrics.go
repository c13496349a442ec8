// Package web serves the page routes of the café front tier and
// enforces the route guard contract with HTTP redirects.
package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the front server.
// Pass to components that need to record metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	GuardDecisions  *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	SessionValid    prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "totem",
				Name:      "requests_total",
				Help:      "Total number of page requests served",
			},
			[]string{"method", "status"}, // status=ok/error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "totem",
				Name:      "request_duration_seconds",
				Help:      "Page request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		GuardDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "totem",
				Name:      "guard_decisions_total",
				Help:      "Route guard outcomes",
			},
			[]string{"decision"}, // allow/redirect_login/redirect_unauthorized
		),
		LoginAttempts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "totem",
				Name:      "login_attempts_total",
				Help:      "Login attempts through the front server",
			},
			[]string{"result"}, // result=success/failure
		),
		SessionValid: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "totem",
				Name:      "session_valid",
				Help:      "1 when the stored session is currently valid",
			},
		),
	}
}
