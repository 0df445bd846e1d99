package middleware

import (
	"strconv"
	"time"

	"driveshare/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records per-route request counts and latency. The route
// template (c.FullPath) keeps cardinality bounded; unmatched paths collapse
// into a single label.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
