package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/pkg/metrics"
)

// Metrics records request counts and latencies per route. m may be
// nil, in which case nothing is recorded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
