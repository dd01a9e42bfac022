// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fridgely_http_requests_total",
		Help: "HTTP responses by route and status code",
	}, []string{"method", "route", "status"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fridgely_upstream_requests_total",
		Help: "Outbound calls to external services by outcome",
	}, []string{"service", "outcome"})
)

// RecordUpstream records the outcome ("ok" or "error") of an outbound call
func RecordUpstream(service, outcome string) {
	upstreamRequests.WithLabelValues(service, outcome).Inc()
}

// GinMiddleware counts every handled request by route and status
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// Handler exposes the default registry for GET /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
