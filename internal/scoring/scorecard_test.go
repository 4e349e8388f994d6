package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictally/legiscore/internal/errors"
)

func sampleInput() ScoringInput {
	return ScoringInput{
		MemberID:    "S000148",
		PeriodStart: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		Attendance: AttendanceData{
			TotalVotes:        100,
			VotesParticipated: 80,
			TotalHearings:     20,
			HearingsAttended:  10,
		},
		Legislation: LegislationData{
			BillsSponsored:   5,
			BillsCosponsored: 30,
		},
		Bipartisanship: BipartisanshipData{
			CrossPartyCosponsorships: 10,
			TotalCosponsorships:      30,
			BipartisanBillsSponsored: 2,
			TotalBillsSponsored:      5,
		},
		CommitteeWork: CommitteeWorkData{CommitteeMemberships: 2},
		Civility:      CivilityData{},
		TheaterRatio: TheaterRatioData{
			LegislativeActions: 35,
			SocialMediaPosts:   20,
		},
	}
}

func TestCalculateScorecard(t *testing.T) {
	card, err := CalculateScorecard(sampleInput(), DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, "S000148", card.MemberID)
	assert.Equal(t, MethodologyVersion, card.MethodologyVersion)
	assert.Len(t, card.CategoryScores, 6)
	assert.False(t, card.CalculatedAt.IsZero())

	assert.GreaterOrEqual(t, card.TotalScore, 0.0)
	assert.LessOrEqual(t, card.TotalScore, 100.0)
	assert.Equal(t, ScoreToGrade(card.TotalScore), card.Grade)

	// The total must equal the rounded sum of the weighted scores
	sum := 0.0
	for _, cs := range card.CategoryScores {
		assert.Equal(t, round1(cs.RawScore*cs.Weight), cs.WeightedScore)
		sum += cs.WeightedScore
	}
	assert.Equal(t, clamp(round1(sum), 0, 100), card.TotalScore)
}

func TestCalculateScorecard_Deterministic(t *testing.T) {
	input := sampleInput()
	weights := DefaultWeights()

	first, err := CalculateScorecard(input, weights)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		next, err := CalculateScorecard(input, weights)
		require.NoError(t, err)

		assert.Equal(t, first.TotalScore, next.TotalScore)
		assert.Equal(t, first.Grade, next.Grade)
		assert.Equal(t, first.CategoryScores, next.CategoryScores)
	}
}

func TestCalculateScorecard_CategoriesInCanonicalOrder(t *testing.T) {
	card, err := CalculateScorecard(sampleInput(), DefaultWeights())
	require.NoError(t, err)

	for i, c := range Categories {
		assert.Equal(t, c, card.CategoryScores[i].Category)
	}
}

func TestCalculateScorecard_InvalidWeights(t *testing.T) {
	weights := DefaultWeights()
	weights.Legislation = 0.50

	_, err := CalculateScorecard(sampleInput(), weights)
	require.Error(t, err)

	appErr := errors.ToAppError(err)
	assert.Equal(t, errors.CategoryConfiguration, appErr.Category)
}

func TestCalculateScorecard_WeightShiftChangesTotal(t *testing.T) {
	input := sampleInput()

	base, err := CalculateScorecard(input, DefaultWeights())
	require.NoError(t, err)

	// Shift weight from a high-scoring category to a low-scoring one while
	// keeping the sum at 1.0
	shifted := DefaultWeights()
	shifted.Attendance -= 0.10
	shifted.Legislation += 0.10

	moved, err := CalculateScorecard(input, shifted)
	require.NoError(t, err)

	assert.NotEqual(t, base.TotalScore, moved.TotalScore)
}

func TestCalculateScorecard_EmptyInputIsNotZero(t *testing.T) {
	// A member with no observable activity lands on neutral defaults, not F=0
	card, err := CalculateScorecard(ScoringInput{MemberID: "A000001"}, DefaultWeights())
	require.NoError(t, err)

	// attendance 100, legislation 0, bipartisanship 50, committee 45,
	// civility 80, theater 50
	assert.Greater(t, card.TotalScore, 0.0)
}

func TestValidateWeights(t *testing.T) {
	assert.True(t, ValidateWeights(DefaultWeights()))

	tests := []struct {
		name  string
		tweak func(*ScoringWeights)
		valid bool
	}{
		{
			name:  "within tolerance",
			tweak: func(w *ScoringWeights) { w.Civility += 0.0005 },
			valid: true,
		},
		{
			name:  "just outside tolerance",
			tweak: func(w *ScoringWeights) { w.Civility += 0.002 },
			valid: false,
		},
		{
			name:  "all zero",
			tweak: func(w *ScoringWeights) { *w = ScoringWeights{} },
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.tweak(&w)
			assert.Equal(t, tt.valid, ValidateWeights(w))
		})
	}
}

func TestWeightsFor(t *testing.T) {
	w := DefaultWeights()

	total := 0.0
	for _, c := range Categories {
		total += w.For(c)
	}
	assert.InDelta(t, 1.0, total, WeightSumTolerance)
	assert.Equal(t, 0.25, w.For(CategoryLegislation))
}
