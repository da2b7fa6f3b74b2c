// Package metrics exposes Prometheus collectors for the HTTP API, the price
// simulator and executed trades.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trade_floor_http_requests_total", Help: "HTTP requests served"},
		[]string{"method", "route", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trade_floor_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trade_floor_ticks_total", Help: "Simulated price ticks recorded"},
		[]string{"symbol"},
	)
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trade_floor_trades_total", Help: "Executed trades"},
		[]string{"company_id", "side"},
	)
	StreamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "trade_floor_stream_subscribers", Help: "Open price stream connections"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, TicksTotal, TradesTotal, StreamSubscribers)
}

// Middleware records the count and latency of every request by matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
