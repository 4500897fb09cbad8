package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/pkg/metrics"
)

// Metrics records request count, latency and in-flight gauge by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := metrics.RequestStarted()
		defer done()

		c.Next()

		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
