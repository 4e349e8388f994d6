package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictally/legiscore/internal/scoring"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func testScorecard(memberID string, score float64, calculatedAt time.Time) *scoring.CalculatedScorecard {
	return &scoring.CalculatedScorecard{
		MemberID:           memberID,
		PeriodStart:        time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		PeriodEnd:          time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		TotalScore:         score,
		Grade:              scoring.ScoreToGrade(score),
		MethodologyVersion: scoring.MethodologyVersion,
		CalculatedAt:       calculatedAt,
	}
}

func TestSaveAndGetHistory(t *testing.T) {
	repo := newTestRepo(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.SaveScorecard(testScorecard("A000001", 72.5, now.Add(-time.Hour))))
	require.NoError(t, repo.SaveScorecard(testScorecard("A000001", 74.0, now)))
	require.NoError(t, repo.SaveScorecard(testScorecard("B000002", 55.0, now)))

	history, err := repo.GetHistory("A000001", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first
	assert.Equal(t, 74.0, history[0].TotalScore)
	assert.Equal(t, 72.5, history[1].TotalScore)
	assert.Equal(t, "C", history[0].Grade)
	assert.Equal(t, scoring.MethodologyVersion, history[0].MethodologyVersion)
}

func TestGetHistory_Empty(t *testing.T) {
	repo := newTestRepo(t)

	history, err := repo.GetHistory("Z999999", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGetHistory_RespectsLimit(t *testing.T) {
	repo := newTestRepo(t)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveScorecard(testScorecard("A000001", float64(60+i), now.Add(time.Duration(i)*time.Minute))))
	}

	history, err := repo.GetHistory("A000001", 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, 64.0, history[0].TotalScore)
}

func TestScorecardRow_PayloadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	card := testScorecard("A000001", 88.3, time.Now().UTC())
	card.CategoryScores = []scoring.CategoryScore{
		{
			Category:      scoring.CategoryAttendance,
			RawScore:      90,
			Weight:        0.20,
			WeightedScore: 18,
		},
	}
	require.NoError(t, repo.SaveScorecard(card))

	history, err := repo.GetHistory("A000001", 1)
	require.NoError(t, err)
	require.Len(t, history, 1)

	decoded, err := history[0].Scorecard()
	require.NoError(t, err)
	assert.Equal(t, 88.3, decoded.TotalScore)
	require.Len(t, decoded.CategoryScores, 1)
	assert.Equal(t, scoring.CategoryAttendance, decoded.CategoryScores[0].Category)
}

func TestHistoryService_LimitClamp(t *testing.T) {
	db, err := NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewHistoryService(NewRepository(db))

	require.NoError(t, svc.Record(testScorecard("A000001", 70, time.Now().UTC())))

	history, err := svc.History("A000001", -5)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
