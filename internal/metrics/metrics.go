package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flickpulse",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	SearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flickpulse",
		Name:      "searches_total",
		Help:      "Total catalog searches by filter and outcome.",
	}, []string{"filter", "outcome"})

	RelayForwardsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flickpulse",
		Name:      "relay_forwards_total",
		Help:      "Total relay forwards to the upstream API by status class.",
	}, []string{"status"})

	TelemetryIncrementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flickpulse",
		Name:      "telemetry_increments_total",
		Help:      "Total telemetry increments by outcome.",
	}, []string{"outcome"})
)

// Register registers all collectors with the given registerer
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		SearchesTotal,
		RelayForwardsTotal,
		TelemetryIncrementsTotal,
	)
}
