package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"investmate/internal/logger"
	"investmate/internal/uuid"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// RequestLogging logs one line per request. An incoming X-Request-ID is
// reused when it is a valid UUID, otherwise a new one is minted. Server
// errors log at error level, client errors at warn.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if !uuid.IsValid(requestID) {
			requestID = uuid.New()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := UserID(c); ok {
			fields = append(fields, "user_id", userID)
		}

		log := logger.Named("http")
		switch {
		case status >= 500:
			log.Errorw("request", fields...)
		case status >= 400:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
