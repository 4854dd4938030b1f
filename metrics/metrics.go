package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "address_api_requests_total",
		Help: "Total HTTP requests by route and status code",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "address_api_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "address_api_upstream_requests_total",
		Help: "Total upstream open-data requests by provider and outcome",
	}, []string{"provider", "outcome"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(UpstreamRequestsTotal)
}

// Handler exposes the registered metrics for Prometheus scraping.
func Handler() http.Handler { return promhttp.Handler() }
