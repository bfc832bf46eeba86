package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotation-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request is retried with an
// Idempotency-Key the same user already used. Requests without a key pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		// Get idempotency key from header
		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			// No idempotency key provided, proceed normally
			c.Next()
			return
		}

		// Get user ID from context
		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		existing, err := config.Repo.Lookup(c.Request.Context(), userID, idempotencyKey, time.Now())
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if existing != nil {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		// Capture the response
		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		// Process the request
		c.Next()

		// Server errors are not replayed so the client can retry them.
		if c.Writer.Status() >= 500 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			UserID:       userID,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			ResponseCode: c.Writer.Status(),
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}

		if err := config.Repo.Save(c.Request.Context(), ikey); err != nil {
			logger.FromContext(c.Request.Context()).Warn("store idempotency key failed",
				zap.String("endpoint", ikey.Endpoint), zap.Error(err))
		}
	}
}
