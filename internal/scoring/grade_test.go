package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreToGrade(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{100, "A+"},
		{97, "A+"},
		{96.9, "A"},
		{93, "A"},
		{90, "A-"},
		{87, "B+"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{63, "D"},
		{60, "D-"},
		{59.9, "F"},
		{30, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreToGrade(tt.score), "score %v", tt.score)
	}
}

func TestGradeBoundariesAreInclusive(t *testing.T) {
	// Each threshold maps to its own grade, one tenth below maps lower
	assert.Equal(t, "A+", ScoreToGrade(97.0))
	assert.Equal(t, "A", ScoreToGrade(96.9))
	assert.Equal(t, "D-", ScoreToGrade(60.0))
	assert.Equal(t, "F", ScoreToGrade(59.9))
}

func TestGradeScale(t *testing.T) {
	scale := GradeScale()

	assert.Len(t, scale, 13)
	assert.Equal(t, GradeBand{MinScore: 97, Grade: "A+"}, scale[0])
	assert.Equal(t, GradeBand{MinScore: 0, Grade: "F"}, scale[len(scale)-1])

	// Strictly descending thresholds
	for i := 1; i < len(scale); i++ {
		assert.Less(t, scale[i].MinScore, scale[i-1].MinScore)
	}
}
