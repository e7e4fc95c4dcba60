package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OUTCOME_FOUND     = "found"
	OUTCOME_NOT_FOUND = "not_found"
	OUTCOME_ERROR     = "error"
)

// Metric. prometheus collectors of the routing service, registered on their own registry.
type Metric struct {
	registry *prometheus.Registry

	routeQueryTotal    *prometheus.CounterVec
	routeQueryDuration *prometheus.HistogramVec
	routeDistance      prometheus.Histogram
	routeScore         prometheus.Histogram
	httpRequestTotal   *prometheus.CounterVec
}

func NewMetric() *Metric {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metric{
		registry: reg,
		routeQueryTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "accessnav_route_queries_total",
			Help: "Total route queries by mobility type and outcome",
		}, []string{"mobility", "outcome"}),
		routeQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "accessnav_route_query_duration_seconds",
			Help:    "Route query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}, []string{"mobility"}),
		routeDistance: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "accessnav_route_distance_meters",
			Help:    "Total distance of found routes in meters",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		routeScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "accessnav_route_accessibility_score",
			Help:    "Accessibility score of found routes",
			Buckets: []float64{20, 40, 60, 80, 90, 100},
		}),
		httpRequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "accessnav_http_requests_total",
			Help: "Total http requests by method and status code",
		}, []string{"method", "code"}),
	}
}

func (m *Metric) ObserveRouteQuery(mobility, outcome string, elapsed time.Duration) {
	m.routeQueryTotal.WithLabelValues(mobility, outcome).Inc()
	m.routeQueryDuration.WithLabelValues(mobility).Observe(elapsed.Seconds())
}

func (m *Metric) ObserveRoute(distance float64, score int) {
	m.routeDistance.Observe(distance)
	m.routeScore.Observe(float64(score))
}

func (m *Metric) ObserveHTTPRequest(method string, code int) {
	m.httpRequestTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

func (m *Metric) Registry() *prometheus.Registry {
	return m.registry
}

// Handler. /metrics endpoint.
func (m *Metric) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
