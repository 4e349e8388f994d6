package resilience

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// HealthLevel represents the current health state of a tracked service
type HealthLevel int

const (
	LevelNormal HealthLevel = iota
	LevelDegraded
	LevelCritical
)

func (l HealthLevel) String() string {
	switch l {
	case LevelNormal:
		return "normal"
	case LevelDegraded:
		return "degraded"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// HealthConfig holds thresholds for service health tracking
type HealthConfig struct {
	HealthCheckInterval time.Duration `json:"health_check_interval"`
	DegradedThreshold   float64       `json:"degraded_threshold"` // Error rate threshold (0.0-1.0)
	CriticalThreshold   float64       `json:"critical_threshold"` // Error rate threshold (0.0-1.0)
	HealthCheckTimeout  time.Duration `json:"health_check_timeout"`
}

// DefaultHealthConfig returns sensible defaults
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		HealthCheckInterval: 30 * time.Second,
		DegradedThreshold:   0.1,
		CriticalThreshold:   0.5,
		HealthCheckTimeout:  5 * time.Second,
	}
}

// ServiceHealth is the tracked health status of one upstream dependency
type ServiceHealth struct {
	ServiceName   string      `json:"service_name"`
	Level         HealthLevel `json:"level"`
	Status        string      `json:"status"`
	ErrorRate     float64     `json:"error_rate"`
	TotalRequests int64       `json:"total_requests"`
	ErrorCount    int64       `json:"error_count"`
	LastErrorTime time.Time   `json:"last_error_time,omitempty"`
}

// HealthCheckFunc probes a service and returns an error if it is unhealthy
type HealthCheckFunc func(ctx context.Context) error

// HealthRegistry tracks request outcomes per service and derives a health
// level from the observed error rate. It backs the health endpoint.
type HealthRegistry struct {
	config       HealthConfig
	services     map[string]*ServiceHealth
	healthChecks map[string]HealthCheckFunc
	mutex        sync.RWMutex
}

// NewHealthRegistry creates a new health registry
func NewHealthRegistry(config HealthConfig) *HealthRegistry {
	return &HealthRegistry{
		config:       config,
		services:     make(map[string]*ServiceHealth),
		healthChecks: make(map[string]HealthCheckFunc),
	}
}

// RegisterService registers a service, optionally with a periodic health check
func (hr *HealthRegistry) RegisterService(serviceName string, healthCheck HealthCheckFunc) {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	hr.services[serviceName] = &ServiceHealth{
		ServiceName: serviceName,
		Level:       LevelNormal,
		Status:      "healthy",
	}

	if healthCheck != nil {
		hr.healthChecks[serviceName] = healthCheck
	}

	slog.Info("Registered service for health tracking", "service", serviceName)
}

// RecordRequest records a request outcome for a service
func (hr *HealthRegistry) RecordRequest(serviceName string, success bool) {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	service, exists := hr.services[serviceName]
	if !exists {
		return
	}

	service.TotalRequests++
	if !success {
		service.ErrorCount++
		service.LastErrorTime = time.Now()
	}

	hr.updateLevel(service)
}

// RecordError records a failed request for a service
func (hr *HealthRegistry) RecordError(serviceName string, err error) {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	service, exists := hr.services[serviceName]
	if !exists {
		return
	}

	service.TotalRequests++
	service.ErrorCount++
	service.LastErrorTime = time.Now()

	hr.updateLevel(service)

	if service.Level != LevelNormal {
		slog.Warn("Service error recorded", "service", serviceName, "error", err, "error_rate", service.ErrorRate)
	}
}

func (hr *HealthRegistry) updateLevel(service *ServiceHealth) {
	if service.TotalRequests > 0 {
		service.ErrorRate = float64(service.ErrorCount) / float64(service.TotalRequests)
	}

	oldLevel := service.Level

	switch {
	case service.ErrorRate >= hr.config.CriticalThreshold:
		service.Level = LevelCritical
		service.Status = "critical"
	case service.ErrorRate >= hr.config.DegradedThreshold:
		service.Level = LevelDegraded
		service.Status = "degraded"
	default:
		service.Level = LevelNormal
		service.Status = "healthy"
	}

	if oldLevel != service.Level {
		slog.Warn("Service health level changed",
			"service", service.ServiceName,
			"old_level", oldLevel.String(),
			"new_level", service.Level.String(),
			"error_rate", service.ErrorRate)
	}
}

// IsServiceAvailable reports whether a service is usable. Only critical
// services are considered unavailable.
func (hr *HealthRegistry) IsServiceAvailable(serviceName string) bool {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()

	service, exists := hr.services[serviceName]
	if !exists {
		return false
	}

	return service.Level != LevelCritical
}

// GetAllServiceHealth returns a snapshot of every tracked service
func (hr *HealthRegistry) GetAllServiceHealth() map[string]*ServiceHealth {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()

	result := make(map[string]*ServiceHealth, len(hr.services))
	for name, service := range hr.services {
		copied := *service
		result[name] = &copied
	}

	return result
}

// ResetService clears a service's counters back to healthy
func (hr *HealthRegistry) ResetService(serviceName string) {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	if service, exists := hr.services[serviceName]; exists {
		*service = ServiceHealth{
			ServiceName: serviceName,
			Level:       LevelNormal,
			Status:      "healthy",
		}
	}
}

// StartHealthChecks runs periodic probes for all registered checks until the
// context is cancelled.
func (hr *HealthRegistry) StartHealthChecks(ctx context.Context) {
	ticker := time.NewTicker(hr.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hr.performHealthChecks(ctx)
		}
	}
}

func (hr *HealthRegistry) performHealthChecks(ctx context.Context) {
	hr.mutex.RLock()
	checks := make(map[string]HealthCheckFunc, len(hr.healthChecks))
	for name, check := range hr.healthChecks {
		checks[name] = check
	}
	hr.mutex.RUnlock()

	for serviceName, healthCheck := range checks {
		go func(name string, check HealthCheckFunc) {
			checkCtx, cancel := context.WithTimeout(ctx, hr.config.HealthCheckTimeout)
			defer cancel()

			if err := check(checkCtx); err != nil {
				hr.RecordError(name, err)
			} else {
				hr.RecordRequest(name, true)
			}
		}(serviceName, healthCheck)
	}
}
