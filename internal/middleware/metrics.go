package middleware

import (
	"strconv"
	"time"

	"trello/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware labels requests by route pattern, never by raw path, so
// board titles do not explode the label set.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
