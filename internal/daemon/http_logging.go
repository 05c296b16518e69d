package daemon

import (
	"time"

	"github.com/gin-gonic/gin"

	"crmdash/internal/logging"
)

const requestIDHeader = "X-Request-Id"

func LoggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Nop()
	}
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = logging.NewRequestID()
		}
		c.Header(requestIDHeader, reqID)
		start := time.Now()
		c.Next()
		fields := []logging.Field{
			logging.F("request_id", reqID),
			logging.F("method", c.Request.Method),
			logging.F("path", c.Request.URL.Path),
			logging.F("status", c.Writer.Status()),
			logging.F("bytes", c.Writer.Size()),
			logging.F("latency_ms", time.Since(start).Milliseconds()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.F("error", c.Errors.Last().Error()))
		}
		if c.Writer.Status() >= 500 {
			logger.Error("http_request", fields...)
			return
		}
		logger.Info("http_request", fields...)
	}
}
