package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/metascope/backend/logging"
)

// RequestStats tracks visitors and per-analysis timings.
func RequestStats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track analysis requests
		if c.Request.URL.Path == "/api/analyze" && c.Request.Method == http.MethodPost {
			loadTime := float64(time.Since(start).Milliseconds())
			stats.TrackAnalysis(loadTime, c.Writer.Status() >= 400)
		}
	}
}
