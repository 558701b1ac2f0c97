package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRateLimiter creates a rate limiter with miniredis for testing
func setupTestRateLimiter(tb testing.TB, name string, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	tb.Helper()
	mr, err := miniredis.Run()
	require.NoError(tb, err)

	client := redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	tb.Cleanup(func() { client.Close() })

	rl := NewRateLimiter(client, RateLimiterConfig{
		Name:        name,
		MaxRequests: maxRequests,
		Window:      window,
	})

	return rl, mr
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func requestFrom(router http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsRequestsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, "api", 5, time.Minute)
	defer mr.Close()
	router := limitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := requestFrom(router, "192.168.1.1")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}
}

func TestRateLimiter_BlocksRequestsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, "auth", 5, 15*time.Minute)
	defer mr.Close()
	router := limitedRouter(rl)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, requestFrom(router, "192.168.1.1").Code)
	}

	w := requestFrom(router, "192.168.1.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code, "6th request should be rate limited")

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.InDelta(t, 15*60, retryAfter, 2)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
	assert.EqualValues(t, retryAfter, body["retryAfter"])
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, "api", 3, time.Minute)
	defer mr.Close()
	router := limitedRouter(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, requestFrom(router, "192.168.1.1").Code)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, requestFrom(router, "192.168.1.2").Code, "IP2 has its own quota")
	}
	assert.Equal(t, http.StatusTooManyRequests, requestFrom(router, "192.168.1.1").Code)
}

func TestRateLimiter_NamesAreIndependent(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, "auth", 1, time.Minute)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	upload := NewRateLimiter(client, RateLimiterConfig{Name: "upload", MaxRequests: 1, Window: time.Hour})

	ctx := context.Background()
	allowed, _, err := rl.CheckLimit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = upload.CheckLimit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed, "login attempts do not count against uploads")

	assert.True(t, mr.Exists("ratelimit:auth:10.0.0.1"))
	assert.True(t, mr.Exists("ratelimit:upload:10.0.0.1"))
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, "api", 2, time.Second)
	defer mr.Close()

	ctx := context.Background()
	ip := "192.168.1.100"

	for i := 0; i < 2; i++ {
		allowed, _, err := rl.CheckLimit(ctx, ip)
		require.NoError(t, err)
		assert.True(t, allowed, "Request %d should be allowed", i+1)
	}

	allowed, retryAfter, err := rl.CheckLimit(ctx, ip)
	require.NoError(t, err)
	assert.False(t, allowed, "3rd request should be denied")
	assert.Greater(t, retryAfter, time.Duration(0))

	// Fast-forward time in miniredis
	mr.FastForward(2 * time.Second)

	allowed, _, err = rl.CheckLimit(ctx, ip)
	require.NoError(t, err)
	assert.True(t, allowed, "Request should be allowed after window expires")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, "api", 1, time.Minute)
	router := limitedRouter(rl)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, requestFrom(router, "192.168.1.1").Code)
	}
}

func TestRateLimiter_SequentialBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, "api", 10, time.Minute)
	defer mr.Close()
	router := limitedRouter(rl)

	successCount := 0
	rateLimitedCount := 0
	for i := 0; i < 20; i++ {
		switch requestFrom(router, "192.168.1.1").Code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			rateLimitedCount++
		}
	}

	assert.Equal(t, 10, successCount, "Should allow exactly 10 requests")
	assert.Equal(t, 10, rateLimitedCount, "Should block exactly 10 requests")
}

// BenchmarkRateLimiter_CheckLimit benchmarks the CheckLimit method
func BenchmarkRateLimiter_CheckLimit(b *testing.B) {
	rl, mr := setupTestRateLimiter(b, "api", 1000000, time.Minute)
	defer mr.Close()

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = rl.CheckLimit(ctx, "192.168.1.100")
	}
}
