package scoring

// gradeThresholds is the full grade ladder, inclusive lower bounds in
// descending order. Anything below 60 is an F.
var gradeThresholds = []struct {
	min   float64
	grade string
}{
	{97, "A+"},
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
}

// ScoreToGrade maps a 0-100 score to its letter grade.
func ScoreToGrade(score float64) string {
	for _, t := range gradeThresholds {
		if score >= t.min {
			return t.grade
		}
	}
	return "F"
}

// GradeBand is one rung of the grade ladder, for methodology reporting.
type GradeBand struct {
	MinScore float64 `json:"min_score"`
	Grade    string  `json:"grade"`
}

// GradeScale returns the full ladder in descending order, ending with F.
func GradeScale() []GradeBand {
	scale := make([]GradeBand, 0, len(gradeThresholds)+1)
	for _, t := range gradeThresholds {
		scale = append(scale, GradeBand{MinScore: t.min, Grade: t.grade})
	}
	scale = append(scale, GradeBand{MinScore: 0, Grade: "F"})
	return scale
}
