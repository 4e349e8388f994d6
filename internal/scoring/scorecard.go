package scoring

import (
	"fmt"
	"time"

	"github.com/civictally/legiscore/internal/errors"
)

// MethodologyVersion tags every scorecard with the formula set that produced
// it. Bump it whenever any scorer formula or weight default changes.
const MethodologyVersion = "1.0.0"

// CalculatedScorecard is the final scoring artifact for one member and period.
type CalculatedScorecard struct {
	MemberID           string          `json:"member_id"`
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	TotalScore         float64         `json:"total_score"`
	Grade              string          `json:"grade"`
	CategoryScores     []CategoryScore `json:"category_scores"`
	MethodologyVersion string          `json:"methodology_version"`
	CalculatedAt       time.Time       `json:"calculated_at"`
}

// CalculateScorecard runs all six category scorers against the input with the
// supplied weights and aggregates the result. Invalid weights are the only
// failure mode: a configuration defect, fatal and never retried.
func CalculateScorecard(input ScoringInput, weights ScoringWeights) (*CalculatedScorecard, error) {
	if !ValidateWeights(weights) {
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("scoring weights must sum to 1.0 within %.3f, got %.4f", WeightSumTolerance, weights.Sum()),
			nil,
		)
	}

	scores := []CategoryScore{
		ScoreAttendance(input.Attendance, weights.Attendance),
		ScoreLegislation(input.Legislation, weights.Legislation),
		ScoreBipartisanship(input.Bipartisanship, weights.Bipartisanship),
		ScoreCommitteeWork(input.CommitteeWork, weights.CommitteeWork),
		ScoreCivility(input.Civility, weights.Civility),
		ScoreTheaterRatio(input.TheaterRatio, weights.TheaterRatio),
	}

	// Recompute weighted scores from the injected weights; callers may pass a
	// set that differs from the defaults baked into each scorer call above.
	total := 0.0
	for i := range scores {
		scores[i].WeightedScore = round1(scores[i].RawScore * scores[i].Weight)
		total += scores[i].WeightedScore
	}

	total = clamp(round1(total), 0, 100)

	return &CalculatedScorecard{
		MemberID:           input.MemberID,
		PeriodStart:        input.PeriodStart,
		PeriodEnd:          input.PeriodEnd,
		TotalScore:         total,
		Grade:              ScoreToGrade(total),
		CategoryScores:     scores,
		MethodologyVersion: MethodologyVersion,
		CalculatedAt:       time.Now().UTC(),
	}, nil
}
