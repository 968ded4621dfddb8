package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP collectors. Each instance owns its registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "Requests currently being served.",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.inflight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// WithPool exposes pgxpool connection gauges next to the HTTP metrics.
func (m *Metrics) WithPool(pool *pgxpool.Pool) *Metrics {
	if pool != nil {
		m.registry.MustRegister(&poolCollector{
			pool:     pool,
			acquired: prometheus.NewDesc("pg_pool_acquired_conns", "Connections currently acquired.", nil, nil),
			idle:     prometheus.NewDesc("pg_pool_idle_conns", "Idle connections.", nil, nil),
			total:    prometheus.NewDesc("pg_pool_total_conns", "Total connections in the pool.", nil, nil),
		})
	}
	return m
}

// Middleware records every request under its route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.inflight.Inc()
		start := time.Now()
		c.Next()
		m.inflight.Dec()

		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

type poolCollector struct {
	pool     *pgxpool.Pool
	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
}

func (p *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.acquired
	ch <- p.idle
	ch <- p.total
}

func (p *poolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := p.pool.Stat()
	ch <- prometheus.MustNewConstMetric(p.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(p.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(p.total, prometheus.GaugeValue, float64(stat.TotalConns()))
}

