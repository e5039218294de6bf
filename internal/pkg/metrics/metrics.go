// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studenthub", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "path", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "studenthub", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ActivityDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studenthub", Name: "activity_decisions_total", Help: "Approve/reject decisions recorded",
	}, []string{"status"})

	PortfoliosGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "studenthub", Name: "portfolios_generated_total", Help: "Portfolio PDFs rendered",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, ActivityDecisions, PortfoliosGenerated)
}

// Handler serves the metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath keeps the label cardinality bounded; unmatched
		// routes collapse into one bucket.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
