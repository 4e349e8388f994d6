package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/civictally/legiscore/docs"
	"github.com/civictally/legiscore/internal/adapters"
	"github.com/civictally/legiscore/internal/cache"
	"github.com/civictally/legiscore/internal/collector"
	"github.com/civictally/legiscore/internal/database"
	"github.com/civictally/legiscore/internal/errors"
	"github.com/civictally/legiscore/internal/monitoring"
	"github.com/civictally/legiscore/internal/ratelimit"
	"github.com/civictally/legiscore/internal/resilience"
	"github.com/civictally/legiscore/internal/scoring"
	"github.com/civictally/legiscore/internal/security"
	"github.com/civictally/legiscore/internal/types"
)

// bioguideIDPattern matches Biographical Directory identifiers: one capital
// letter followed by six digits.
var bioguideIDPattern = regexp.MustCompile(`^[A-Z][0-9]{6}$`)

// ScorecardResponse is the full payload served for one scorecard request
type ScorecardResponse struct {
	Scorecard   *scoring.CalculatedScorecard `json:"scorecard"`
	DataSources collector.DataSourceReport   `json:"data_sources"`
	Period      string                       `json:"period"`
}

// serverDeps bundles everything the route handlers need
type serverDeps struct {
	weights        scoring.ScoringWeights
	collector      *collector.Collector
	cache          *cache.Store
	cacheTTL       time.Duration
	history        *database.HistoryService
	healthRegistry *resilience.HealthRegistry
	rateLimiter    *ratelimit.RateLimiter
	metrics        *monitoring.Metrics
	logger         *monitoring.Logger
	upstreamStats  func() map[string]interface{}
	dbStats        func() map[string]interface{}
}

// @title LegiScore API
// @version 1.0.0
// @description Deterministic productivity and civility scorecards for members of Congress.
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	congressAPIKey := os.Getenv("CONGRESS_API_KEY")
	redisAddr := os.Getenv("REDIS_URL")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	port := getEnvOrDefault("PORT", "8080")
	cacheTTL := getDurationOrDefault("CACHE_TTL", time.Hour)

	// Weights are a startup-time configuration contract. A bad set must
	// fail boot, never mid-request.
	weights := scoring.DefaultWeights()
	if !scoring.ValidateWeights(weights) {
		slog.Error("Scoring weights do not sum to 1.0", "sum", weights.Sum())
		os.Exit(1)
	}

	if congressAPIKey == "" {
		slog.Warn("CONGRESS_API_KEY not set, upstream requests will be rejected by the API")
	}

	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	historyService := database.NewHistoryService(repo)

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	healthRegistry := resilience.NewHealthRegistry(resilience.DefaultHealthConfig())
	healthRegistry.RegisterService("congress-api", nil)

	congressAdapter := adapters.NewCongressAdapter(congressAPIKey, healthRegistry, appLogger)
	defer congressAdapter.Close()

	scorecardCache := cache.NewStore(6*time.Hour, appMetrics)
	defer scorecardCache.Close()

	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, 0)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer redisClient.Close()

	deps := serverDeps{
		weights:        weights,
		collector:      collector.New(congressAdapter),
		cache:          scorecardCache,
		cacheTTL:       cacheTTL,
		history:        historyService,
		healthRegistry: healthRegistry,
		rateLimiter:    ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics),
		metrics:        appMetrics,
		logger:         appLogger,
		upstreamStats:  congressAdapter.GetClientStats,
		dbStats:        db.GetPoolStats,
	}

	r := setupRouter(deps)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter builds the gin engine with all middleware and routes
func setupRouter(deps serverDeps) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.Use(monitoring.MonitoringMiddleware(deps.metrics, deps.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(security.SecurityHeadersMiddleware())

	if deps.rateLimiter != nil {
		r.Use(deps.rateLimiter.IPRateLimitMiddleware())
	}

	r.GET("/health", deps.handleHealth)
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.metrics.GetStats())
	})
	r.GET("/methodology", deps.handleMethodology)
	r.GET("/scorecard/:bioguideId", deps.handleScorecard)
	r.GET("/scorecard/:bioguideId/history", deps.handleHistory)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (d serverDeps) handleHealth(c *gin.Context) {
	services := d.healthRegistry.GetAllServiceHealth()

	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   scoring.MethodologyVersion,
		"services":  services,
		"cache":     d.cache.Stats(),
	}

	if d.upstreamStats != nil {
		response["upstream"] = d.upstreamStats()
	}
	if d.dbStats != nil {
		response["database"] = d.dbStats()
	}

	status := http.StatusOK
	for _, service := range services {
		if service.Level == resilience.LevelCritical {
			response["status"] = "degraded"
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, response)
}

func (d serverDeps) handleMethodology(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"methodology_version": scoring.MethodologyVersion,
		"weights":             d.weights,
		"grade_scale":         scoring.GradeScale(),
		"categories":          scoring.Categories,
		"periods":             []types.Period{types.PeriodSession, types.PeriodYearly, types.PeriodQuarterly},
		"notes": []string{
			"Scores are deterministic: identical inputs always produce identical scorecards.",
			"Category scores are clamped to [0, 100] and rounded to one decimal place.",
			"The total is the weighted sum of category scores under the published weights.",
		},
	})
}

func (d serverDeps) handleScorecard(c *gin.Context) {
	memberID := c.Param("bioguideId")
	if !bioguideIDPattern.MatchString(memberID) {
		appErr := errors.NewValidationError("bioguide ID must be one uppercase letter followed by six digits")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	period, err := types.ParsePeriod(c.Query("period"))
	if err != nil {
		appErr := errors.NewValidationError(err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	cacheKey := fmt.Sprintf("scorecard:%s:%s", memberID, period)

	fetch := func(ctx context.Context) (interface{}, error) {
		start := time.Now()

		periodStart, periodEnd := period.Bounds(time.Now().UTC())

		d.metrics.IncrementCongressCalls()
		result, err := d.collector.Collect(ctx, memberID, periodStart, periodEnd)
		if err != nil {
			d.healthRegistry.RecordError("congress-api", err)
			return nil, err
		}
		d.healthRegistry.RecordRequest("congress-api", true)
		d.logger.CollectionLogger(memberID, result.Input.Legislation.BillsSponsored,
			result.Input.Bipartisanship.TotalCosponsorships, time.Since(start))

		card, err := scoring.CalculateScorecard(result.Input, d.weights)
		if err != nil {
			return nil, err
		}
		d.metrics.IncrementScorecardsComputed()

		d.logger.ScorecardLogger(memberID, string(period), card.TotalScore, card.Grade, time.Since(start), false)
		d.history.RecordAsync(card)

		return &ScorecardResponse{
			Scorecard:   card,
			DataSources: result.DataSources,
			Period:      string(period),
		}, nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	// The bypass calls the fetcher directly so it cannot evict a warm entry
	// other requests are being served from; a successful fetch still
	// refreshes the shared entry.
	if c.Query("skipCache") == "true" {
		data, err := fetch(ctx)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		d.cache.Set(cacheKey, data, d.cacheTTL)

		c.Header("X-Cache", string(cache.StatusMiss))
		c.JSON(http.StatusOK, data)
		return
	}

	result, err := d.cache.GetOrFetch(ctx, cacheKey, d.cacheTTL, fetch)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	d.logger.CacheLogger("get", cacheKey, string(result.Status), result.Age)

	c.Header("X-Cache", string(result.Status))
	if result.IsStale {
		c.Header("Warning", `110 - "Response is Stale"`)
	}

	c.JSON(http.StatusOK, result.Data)
}

func (d serverDeps) handleHistory(c *gin.Context) {
	memberID := c.Param("bioguideId")
	if !bioguideIDPattern.MatchString(memberID) {
		appErr := errors.NewValidationError("bioguide ID must be one uppercase letter followed by six digits")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	history, err := d.history.History(memberID, limit)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member_id": memberID,
		"count":     len(history),
		"history":   history,
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}
