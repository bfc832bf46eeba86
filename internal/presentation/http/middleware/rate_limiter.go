package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"golang.org/x/time/rate"
)

// RateLimiter limits requests per authenticated user, falling back to the
// client IP for anonymous requests such as login.
type RateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// DefaultRateLimiterConfig returns the limits used when none are configured
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// RateLimiterConfigFromWindow converts "requests per window" into a limiter
// config. The burst admits a full window of requests at once.
func RateLimiterConfigFromWindow(requests int, window time.Duration) RateLimiterConfig {
	cfg := DefaultRateLimiterConfig()
	if requests <= 0 || window <= 0 {
		return cfg
	}
	cfg.RequestsPerSecond = float64(requests) / window.Seconds()
	cfg.BurstSize = requests
	return cfg
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
// Call Close to stop the loop.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Close stops the background cleanup.
func (rl *RateLimiter) Close() {
	close(rl.stop)
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, ok := rl.limiters[key]; ok {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[key] = &rateLimiterEntry{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Middleware returns a Gin middleware applying the limit. It must run after
// AuthMiddleware to key by user.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(rateLimitKey(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.ErrorWithCode(c, 429, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return "user:" + id.String()
		}
	}
	return "ip:" + c.ClientIP()
}
