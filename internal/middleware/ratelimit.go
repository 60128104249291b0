package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter applies a fixed-window per-client-IP limit to the sensitive
// auth endpoints (login, forgot-password). State lives in Redis so the limit
// holds across replicas. A nil client disables limiting, which keeps local
// development working without Redis.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Limit returns middleware enforcing the configured limit for the named
// endpoint group. Redis outages fail open: an unreachable limiter must not
// take logins down with it.
func (r *RateLimiter) Limit(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || r.rdb == nil || r.limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", group, c.ClientIP())
		ctx := c.Request.Context()

		count, err := r.rdb.Incr(ctx, key).Result()
		if err != nil {
			r.logger.Warn("rate limiter unavailable", zap.String("group", group), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			r.rdb.Expire(ctx, key, r.window)
		}

		if count > int64(r.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
