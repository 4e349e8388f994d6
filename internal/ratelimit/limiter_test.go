package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictally/legiscore/internal/monitoring"
)

func newFallbackLimiter(t *testing.T, config Config) *RateLimiter {
	t.Helper()

	// Empty addr disables Redis, forcing the in-memory path
	redisClient, err := NewRedisClient("", "", 0)
	require.NoError(t, err)

	return NewRateLimiter(redisClient, config, monitoring.NewMetrics())
}

func TestAllowIP_Fallback(t *testing.T) {
	rl := newFallbackLimiter(t, Config{IPLimitPerMin: 10, BurstMultiplier: 1})

	result, err := rl.AllowIP(context.Background(), "192.0.2.1")
	require.NoError(t, err)

	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
}

func TestAllowIP_BlocksAfterBurst(t *testing.T) {
	rl := newFallbackLimiter(t, Config{IPLimitPerMin: 2, BurstMultiplier: 1})

	blocked := false
	// Burst floor is 5 tokens, so exhaustion takes a few extra calls
	for i := 0; i < 20; i++ {
		result, err := rl.AllowIP(context.Background(), "192.0.2.2")
		require.NoError(t, err)
		if !result.Allowed {
			blocked = true
			assert.Greater(t, result.RetryAfter.Seconds(), 0.0)
			break
		}
	}

	assert.True(t, blocked, "limiter never blocked after burst exhaustion")
}

func TestAllowIP_SeparateBucketsPerIP(t *testing.T) {
	rl := newFallbackLimiter(t, Config{IPLimitPerMin: 2, BurstMultiplier: 1})

	for i := 0; i < 20; i++ {
		rl.AllowIP(context.Background(), "192.0.2.3")
	}

	result, err := rl.AllowIP(context.Background(), "192.0.2.4")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := newFallbackLimiter(t, Config{IPLimitPerMin: 2, BurstMultiplier: 1})

	router := gin.New()
	router.Use(rl.IPRateLimitMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var sawBlock bool
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.5:1234"
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))

		if w.Code == http.StatusTooManyRequests {
			sawBlock = true
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			break
		}
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.True(t, sawBlock, "middleware never returned 429")
}

func TestGetStats(t *testing.T) {
	rl := newFallbackLimiter(t, DefaultConfig())

	rl.AllowIP(context.Background(), "192.0.2.6")

	stats := rl.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}
