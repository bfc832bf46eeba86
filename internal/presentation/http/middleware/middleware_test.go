package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/pkg/logger"
	"github.com/sangkips/quotation-api/pkg/metrics"
	"github.com/sangkips/quotation-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoggerMiddleware_PropagatesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))

	var fromCtx *zap.Logger
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = logger.FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := serve(r, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	require.NotNil(t, fromCtx)

	entries := logs.FilterMessage("request handled").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "/ping", fields["route"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
}

func TestLoggerMiddleware_GeneratesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	entries := logs.FilterMessage("request rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unmatched", entries[0].ContextMap()["route"])
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	r := gin.New()
	r.Use(MetricsMiddleware(nil))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsMiddleware_RecordsRoute(t *testing.T) {
	m := metrics.New("test")
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/quotes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	serve(r, httptest.NewRequest(http.MethodGet, "/quotes/abc", nil))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, w.Body.String(), `route="/quotes/:id"`)
}

func TestRateLimiter_LimitsPerKey(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	t.Cleanup(rl.Close)

	userA, userB := uuid.New(), uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-User") == "b" {
			c.Set("user_id", userB)
		} else {
			c.Set("user_id", userA)
		}
	})
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User", "b")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestRateLimiterConfigFromWindow(t *testing.T) {
	cfg := RateLimiterConfigFromWindow(120, time.Minute)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	fallback := RateLimiterConfigFromWindow(0, time.Minute)
	assert.Equal(t, DefaultRateLimiterConfig(), fallback)
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test", "secret", time.Hour, time.Hour)
	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "ops@example.com", []string{"staff"}, []string{"manage-quotes"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(jwtManager))
	r.GET("/quotes", RequirePermission("manage-quotes"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/services", RequirePermission("manage-services"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/users", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusCreated) })

	request := func(method, path, header string) int {
		req := httptest.NewRequest(method, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusUnauthorized, request(http.MethodGet, "/quotes", ""))
	assert.Equal(t, http.StatusUnauthorized, request(http.MethodGet, "/quotes", "Token "+token))
	assert.Equal(t, http.StatusUnauthorized, request(http.MethodGet, "/quotes", "Bearer garbage"))
	assert.Equal(t, http.StatusOK, request(http.MethodGet, "/quotes", "Bearer "+token))
	assert.Equal(t, http.StatusForbidden, request(http.MethodGet, "/services", "Bearer "+token))
	assert.Equal(t, http.StatusForbidden, request(http.MethodPost, "/users", "Bearer "+token))
}
