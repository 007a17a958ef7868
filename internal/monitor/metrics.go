package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provost",
			Subsystem: "monitor",
			Name:      "checks_total",
			Help:      "Total number of monitoring checks by check and result",
		},
		[]string{"check", "result"},
	)

	checkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "provost",
			Subsystem: "monitor",
			Name:      "check_duration_seconds",
			Help:      "Duration of monitoring checks in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"check"},
	)

	alertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provost",
			Subsystem: "monitor",
			Name:      "alerts_total",
			Help:      "Total number of alerts raised by check",
		},
		[]string{"check"},
	)

	deliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provost",
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Total number of webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)
)

// newRegistry builds the registry served by the daemon's metrics endpoint.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(checksTotal, checkDuration, alertsTotal, deliveriesTotal)
	return reg
}

// recordCheck records one check run.
func recordCheck(check, result string, seconds float64) {
	checksTotal.WithLabelValues(check, result).Inc()
	checkDuration.WithLabelValues(check).Observe(seconds)
}

// recordAlert records a raised alert.
func recordAlert(check string) {
	alertsTotal.WithLabelValues(check).Inc()
}

// recordDelivery records a webhook delivery outcome.
func recordDelivery(outcome string) {
	deliveriesTotal.WithLabelValues(outcome).Inc()
}
