package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors published by the server.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	PlansBuilt        prometheus.Counter
	PlanFailuresTotal *prometheus.CounterVec
}

// NewMetrics registers the server's collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "listql_http_requests_total",
			Help: "HTTP requests by resource and status code.",
		}, []string{"resource", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "listql_http_request_duration_seconds",
			Help:    "HTTP request latency by resource.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		PlansBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "listql_plans_built_total",
			Help: "Query plans assembled successfully.",
		}),
		PlanFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "listql_plan_failures_total",
			Help: "Query plan interpretation failures by error kind.",
		}, []string{"kind"}),
	}
}
