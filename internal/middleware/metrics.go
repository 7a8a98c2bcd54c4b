package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velinpetkov/task-tracker-api/internal/metrics"
)

// Metrics observes request duration into the prometheus histogram. The
// route template is used as the path label to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
