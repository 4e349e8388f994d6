package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementCacheStale()
	m.IncrementCongressCalls()
	m.IncrementScorecardsComputed()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
	assert.Equal(t, int64(1), stats["cache_stale_serves"])
	assert.Equal(t, int64(1), stats["congress_api_calls"])
	assert.Equal(t, int64(1), stats["scorecards_computed"])
	assert.Equal(t, 50.0, stats["error_rate_percent"])
	assert.Equal(t, 50.0, stats["cache_hit_rate_percent"])
}

func TestMetricsResponseTimeAverage(t *testing.T) {
	m := NewMetrics()

	// The running average halves in the first new sample
	m.RecordResponseTime(100 * time.Millisecond)
	assert.Equal(t, int64(50*time.Millisecond), m.AverageResponseTime)

	m.RecordResponseTime(300 * time.Millisecond)
	assert.Equal(t, int64(175*time.Millisecond), m.AverageResponseTime)
}

func TestMetricsStatusDistribution(t *testing.T) {
	m := NewMetrics()

	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(404)

	dist := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), dist[200])
	assert.Equal(t, int64(1), dist[404])
}

func TestMetricsRateLimitCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRateLimitIPBlock()
	m.IncrementRateLimitRedisError()
	m.IncrementRateLimitFallback()

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["rate_limit_ip_blocks"])
	assert.Equal(t, int64(1), stats["rate_limit_redis_errors"])
	assert.Equal(t, int64(1), stats["rate_limit_fallbacks"])
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.IncrementRequest()
	m.RecordRequestByStatus(200)

	m.Reset()

	stats := m.GetStats()
	assert.Equal(t, int64(0), stats["total_requests"])
	assert.Empty(t, m.GetStatusCodeDistribution())
}
