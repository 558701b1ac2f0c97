package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig defines rate limiting rules
type RateLimiterConfig struct {
	Name        string        // Key namespace, so login and upload limits count separately
	MaxRequests int           // Maximum requests allowed in the window
	Window      time.Duration // Fixed window starting at the first request
	Message     string        // Body message when the limit is hit
}

// RateLimiter provides IP-based rate limiting using Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimiterConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimiterConfig) *RateLimiter {
	if config.Name == "" {
		config.Name = "api"
	}
	if config.Message == "" {
		config.Message = "Too many requests from this IP, please try again later."
	}
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Middleware returns a Gin middleware function for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter, err := rl.CheckLimit(c.Request.Context(), clientIP)
		if err != nil {
			// Fail open: an unavailable Redis must not take the site down
			logger.Log.Warn("Rate limiter unavailable, allowing request",
				zap.String("limiter", rl.config.Name),
				zap.String("ip", clientIP),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"message":    rl.config.Message,
				"retryAfter": seconds,
			})
			return
		}

		c.Next()
	}
}

// CheckLimit counts one request for ip.
// Returns: (allowed bool, retryAfter duration, error)
func (rl *RateLimiter) CheckLimit(ctx context.Context, ip string) (bool, time.Duration, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", rl.config.Name, ip)

	// Use Redis INCR with EXPIRE for atomic counter
	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	// Set expiry on first request (count = 1)
	if count == 1 {
		if err := rl.redis.Expire(ctx, key, rl.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.config.MaxRequests) {
		ttl, err := rl.redis.TTL(ctx, key).Result()
		if err != nil || ttl <= 0 {
			// A key without expiry would block forever; restart the window
			if ttl == -1 {
				rl.redis.Expire(ctx, key, rl.config.Window)
			}
			ttl = rl.config.Window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
