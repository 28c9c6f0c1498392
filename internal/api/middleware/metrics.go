package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "charts_http_requests_total",
		Help: "HTTP requests by route and status code",
	},
	[]string{"method", "route", "status"},
)

// RegisterMetrics adds the HTTP request counter to the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(requestsTotal)
}

// Metrics counts requests by matched route, so unknown paths share one label.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
