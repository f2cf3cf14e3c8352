// Package metrics exposes Prometheus instrumentation for the HTTP layer and the solve pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "math_solver"

// Metrics owns a private registry so tests can build independent instances.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	solves        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_outcomes_total",
			Help:      "Solve attempts by outcome kind.",
		}, []string{"kind"}),
		// 認識とLLM呼び出しを含むため長めのバケット
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "End-to-end solve pipeline duration.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.solves,
		m.solveDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware records request count and latency. Unmatched routes share one label
// so arbitrary paths cannot blow up cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveSolve records one pipeline run labelled by its outcome kind.
func (m *Metrics) ObserveSolve(kind string, d time.Duration) {
	m.solves.WithLabelValues(kind).Inc()
	m.solveDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Handler serves the exposition format for the private registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
