package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/pkg/logger"
	"go.uber.org/zap"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware assigns a request id, stores a request-scoped zap logger
// in the request context and logs every finished request.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		reqLog := log.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes_out", c.Writer.Size()),
		}
		if userID, ok := c.Get("user_id"); ok {
			if id, ok := userID.(uuid.UUID); ok {
				fields = append(fields, zap.Stringer("user_id", id))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			reqLog.Error("request failed", fields...)
		case status >= 400:
			reqLog.Warn("request rejected", fields...)
		default:
			reqLog.Info("request handled", fields...)
		}
	}
}
