package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimewatch_requests_total",
		Help: "Total HTTP requests by method and status",
	}, []string{"method", "status"})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "crimewatch_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ReportsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimewatch_reports_created_total",
		Help: "Total crime reports accepted",
	})
	NearbyQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimewatch_nearby_queries_total",
		Help: "Total nearby-report queries served",
	})
	AdminLoginFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimewatch_admin_login_failures_total",
		Help: "Total rejected admin login attempts",
	})
	AdminSessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "crimewatch_admin_sessions_active",
		Help: "Admin tokens currently active",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ReportsCreatedTotal)
	prometheus.MustRegister(NearbyQueriesTotal)
	prometheus.MustRegister(AdminLoginFailuresTotal)
	prometheus.MustRegister(AdminSessionsActive)
}

func Handler() http.Handler { return promhttp.Handler() }
