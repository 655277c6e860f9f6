package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// RateLimiter enforces a fixed-window per-IP request limit backed by Redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Limit counts requests per client IP in the current window and rejects
// with 429 once the limit is exceeded. Redis being down fails open.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		window := time.Now().Unix() / int64(l.window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := l.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(c.Request.Context(), key, l.window)
		}

		if count > int64(l.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Fail("Too many requests"))
			return
		}
		c.Next()
	}
}
