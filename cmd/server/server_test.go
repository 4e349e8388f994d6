package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictally/legiscore/internal/cache"
	"github.com/civictally/legiscore/internal/collector"
	"github.com/civictally/legiscore/internal/database"
	"github.com/civictally/legiscore/internal/errors"
	"github.com/civictally/legiscore/internal/monitoring"
	"github.com/civictally/legiscore/internal/resilience"
	"github.com/civictally/legiscore/internal/scoring"
	"github.com/civictally/legiscore/internal/types"
)

type fakeSource struct {
	profile     *types.MemberProfile
	sponsored   []types.LegislativeRecord
	cosponsored []types.LegislativeRecord
	err         error
}

func (f *fakeSource) GetMemberProfile(ctx context.Context, memberID string) (*types.MemberProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeSource) GetSponsoredRecords(ctx context.Context, memberID string, limit int) ([]types.LegislativeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sponsored, nil
}

func (f *fakeSource) GetCosponsoredRecords(ctx context.Context, memberID string, limit int) ([]types.LegislativeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cosponsored, nil
}

func newTestRouter(t *testing.T, source collector.RecordSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := cache.NewStore(time.Minute, nil)
	t.Cleanup(store.Close)

	healthRegistry := resilience.NewHealthRegistry(resilience.DefaultHealthConfig())
	healthRegistry.RegisterService("congress-api", nil)

	deps := serverDeps{
		weights:        scoring.DefaultWeights(),
		collector:      collector.New(source),
		cache:          store,
		cacheTTL:       time.Minute,
		history:        database.NewHistoryService(database.NewRepository(db)),
		healthRegistry: healthRegistry,
		metrics:        monitoring.NewMetrics(),
		logger:         monitoring.NewLogger(),
	}

	return setupRouter(deps)
}

func activeSource() *fakeSource {
	now := time.Now().UTC()
	return &fakeSource{
		profile: &types.MemberProfile{
			BioguideID: "S000148",
			Name:       "Test Member",
			Party:      "D",
			State:      "NY",
			Chamber:    "Senate",
		},
		sponsored: []types.LegislativeRecord{
			{
				Number:     "1234",
				UpdateDate: now,
				LatestAction: &types.RecordAction{
					Text: "Became Public Law No: 119-21.",
				},
				Cosponsors: []types.SponsorRef{{Party: "R"}},
			},
		},
		cosponsored: []types.LegislativeRecord{
			{
				Number:     "42",
				UpdateDate: now,
				Sponsors:   []types.SponsorRef{{Party: "R"}},
			},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, activeSource())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, scoring.MethodologyVersion, response["version"])
	assert.Contains(t, response, "services")
}

func TestMethodologyEndpoint(t *testing.T) {
	r := newTestRouter(t, activeSource())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/methodology", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, scoring.MethodologyVersion, response["methodology_version"])
	assert.Contains(t, response, "weights")
	assert.Contains(t, response, "grade_scale")

	scale := response["grade_scale"].([]interface{})
	first := scale[0].(map[string]interface{})
	assert.Equal(t, "A+", first["grade"])
	assert.Equal(t, 97.0, first["min_score"])
}

func TestScorecardEndpoint(t *testing.T) {
	r := newTestRouter(t, activeSource())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var response ScorecardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	card := response.Scorecard
	require.NotNil(t, card)
	assert.Equal(t, "S000148", card.MemberID)
	assert.Equal(t, scoring.MethodologyVersion, card.MethodologyVersion)
	assert.GreaterOrEqual(t, card.TotalScore, 0.0)
	assert.LessOrEqual(t, card.TotalScore, 100.0)
	assert.NotEmpty(t, card.Grade)
	assert.Len(t, card.CategoryScores, 6)

	assert.Equal(t, collector.SourceLive, response.DataSources.Legislation)
	assert.Equal(t, "session", response.Period)
}

func TestScorecardEndpoint_CacheHit(t *testing.T) {
	r := newTestRouter(t, activeSource())

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(second, req)

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestScorecardEndpoint_SkipCache(t *testing.T) {
	r := newTestRouter(t, activeSource())

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/scorecard/S000148?skipCache=true", nil)
	r.ServeHTTP(second, req)

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
}

func TestScorecardEndpoint_SkipCacheFailureKeepsWarmEntry(t *testing.T) {
	source := activeSource()
	r := newTestRouter(t, source)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	// Upstream goes down; the bypass fails but the shared entry survives
	source.err = errors.NewUpstreamError("congress", http.StatusBadGateway, nil)

	bypass := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/scorecard/S000148?skipCache=true", nil)
	r.ServeHTTP(bypass, req)
	require.Equal(t, http.StatusBadGateway, bypass.Code)

	after := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(after, req)

	require.Equal(t, http.StatusOK, after.Code)
	assert.Equal(t, "HIT", after.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), after.Body.String())
}

func TestScorecardEndpoint_SkipCacheRefreshesEntry(t *testing.T) {
	r := newTestRouter(t, activeSource())

	bypass := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148?skipCache=true", nil)
	r.ServeHTTP(bypass, req)
	require.Equal(t, http.StatusOK, bypass.Code)

	// The successful bypass populated the shared entry
	after := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(after, req)

	require.Equal(t, http.StatusOK, after.Code)
	assert.Equal(t, "HIT", after.Header().Get("X-Cache"))
	assert.JSONEq(t, bypass.Body.String(), after.Body.String())
}

func TestScorecardEndpoint_InvalidBioguideID(t *testing.T) {
	r := newTestRouter(t, activeSource())

	for _, id := range []string{"s000148", "S00014", "S0001480", "1234567", "SABCDEF"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/scorecard/"+id, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q should be rejected", id)
	}
}

func TestScorecardEndpoint_InvalidPeriod(t *testing.T) {
	r := newTestRouter(t, activeSource())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148?period=weekly", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScorecardEndpoint_PeriodVariants(t *testing.T) {
	r := newTestRouter(t, activeSource())

	for _, period := range []string{"session", "yearly", "quarterly"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/scorecard/S000148?period="+period, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response ScorecardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, period, response.Period)
	}
}

func TestScorecardEndpoint_MemberNotFound(t *testing.T) {
	source := &fakeSource{err: errors.NewMemberNotFoundError("Z999999")}
	r := newTestRouter(t, source)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/Z999999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScorecardEndpoint_UpstreamFailure(t *testing.T) {
	source := &fakeSource{err: errors.NewUpstreamError("congress", http.StatusBadGateway, nil)}
	r := newTestRouter(t, source)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	r := newTestRouter(t, activeSource())

	// Populate history through a scorecard calculation
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/S000148", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Persistence is async
	require.Eventually(t, func() bool {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/scorecard/S000148/history", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			return false
		}
		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			return false
		}
		return response["count"].(float64) >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHistoryEndpoint_InvalidBioguideID(t *testing.T) {
	r := newTestRouter(t, activeSource())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/scorecard/bogus/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(t, activeSource())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
