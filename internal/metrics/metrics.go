// Package metrics holds the Prometheus collectors the service exports on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "passgen"

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts by result.",
	}, []string{"result"})

	PassExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pass_exports_total",
		Help:      "Pass image renders by result.",
	}, []string{"result"})

	AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_logins_total",
		Help:      "Admin gate attempts by result.",
	}, []string{"result"})

	StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_write_failures_total",
		Help:      "Collection writes that failed and were rolled back.",
	})

	Employees = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "employees",
		Help:      "Number of records in the collection.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "pattern", "status"})
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultError    = "error"
	ResultDenied   = "denied"
	ResultThrottle = "throttled"
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
