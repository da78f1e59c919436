package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	mutations  *prometheus.CounterVec
	candidates prometheus.Gauge
}

// NewMetrics registers the HTTP host collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "potionlab",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "potionlab",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "potionlab",
			Name:      "trial_mutations_total",
			Help:      "Accepted trial log mutations by operation",
		}, []string{"op"}),
		candidates: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "potionlab",
			Name:      "candidates",
			Help:      "Combinations still in the candidate set",
		}),
	}
}

// middleware records request count and latency per route template
func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) mutated(op string, candidates int) {
	m.mutations.WithLabelValues(op).Inc()
	m.candidates.Set(float64(candidates))
}
