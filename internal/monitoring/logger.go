package monitoring

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with domain-specific helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScorecardLogger logs a completed scorecard calculation
func (l *Logger) ScorecardLogger(memberID, period string, totalScore float64, grade string, duration time.Duration, cacheHit bool) {
	l.Info("Scorecard Calculated",
		"member_id", memberID,
		"period", period,
		"total_score", totalScore,
		"grade", grade,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// CollectionLogger logs a data collection run
func (l *Logger) CollectionLogger(memberID string, sponsored, cosponsored int, duration time.Duration) {
	l.Info("Collection Completed",
		"member_id", memberID,
		"sponsored_records", sponsored,
		"cosponsored_records", cosponsored,
		"duration_ms", duration.Milliseconds(),
	)
}

// UpstreamAPILogger logs external API calls
func (l *Logger) UpstreamAPILogger(apiName, method, endpoint string, statusCode int, duration time.Duration, success bool) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}

	l.Log(context.Background(), level, "Upstream API Call",
		"api_name", apiName,
		"method", method,
		"endpoint", endpoint,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// CacheLogger logs cache operations
func (l *Logger) CacheLogger(operation, key string, status string, age time.Duration) {
	l.Debug("Cache Operation",
		"operation", operation,
		"key", key,
		"status", status,
		"age_seconds", age.Seconds(),
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	l.Logger = slog.New(handler)
}

var startTime = time.Now()
