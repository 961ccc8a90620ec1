package middleware

import (
	"os"
	"time"

	"shelfcloud/internal/logging"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs request information through the global logger.
// It only logs when the LOG_REQUESTS environment variable is set to "true".
func RequestLogger() gin.HandlerFunc {
	logRequests := os.Getenv("LOG_REQUESTS") == "true"

	if !logRequests {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		logging.GetGlobalLogger().LogHTTPRequest(
			method,
			path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			latency.String(),
		)
	}
}
