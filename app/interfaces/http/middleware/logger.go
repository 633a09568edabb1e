package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"larpmanager.app/larp-gateway/app/utils/contextkeys"
)

// LoggerMiddleware tags every request with a correlation id and logs the
// request line on completion. The gateway serves cached reads, so bodies are
// not captured; path, status and latency are what matters here.
func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		ctx := context.WithValue(c.Request.Context(), contextkeys.RequestId{}, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}).Info("")
	}
}
