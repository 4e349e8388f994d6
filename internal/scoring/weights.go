package scoring

import "math"

// WeightSumTolerance is the allowed drift of the weight sum from 1.0.
const WeightSumTolerance = 0.001

// ScoringWeights assigns a relative weight to each category. A valid set sums
// to 1.0 within WeightSumTolerance.
type ScoringWeights struct {
	Attendance     float64 `json:"attendance"`
	Legislation    float64 `json:"legislation"`
	Bipartisanship float64 `json:"bipartisanship"`
	CommitteeWork  float64 `json:"committee_work"`
	Civility       float64 `json:"civility"`
	TheaterRatio   float64 `json:"theater_ratio"`
}

// DefaultWeights returns the methodology's published weight set.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Attendance:     0.20,
		Legislation:    0.25,
		Bipartisanship: 0.15,
		CommitteeWork:  0.15,
		Civility:       0.10,
		TheaterRatio:   0.15,
	}
}

// Sum returns the total of all six weights.
func (w ScoringWeights) Sum() float64 {
	return w.Attendance + w.Legislation + w.Bipartisanship +
		w.CommitteeWork + w.Civility + w.TheaterRatio
}

// For returns the weight assigned to a category.
func (w ScoringWeights) For(c Category) float64 {
	switch c {
	case CategoryAttendance:
		return w.Attendance
	case CategoryLegislation:
		return w.Legislation
	case CategoryBipartisanship:
		return w.Bipartisanship
	case CategoryCommitteeWork:
		return w.CommitteeWork
	case CategoryCivility:
		return w.Civility
	case CategoryTheaterRatio:
		return w.TheaterRatio
	default:
		return 0
	}
}

// ValidateWeights reports whether the weight set sums to 1.0 within tolerance.
// Weights are never renormalized; a bad set is a deployment defect.
func ValidateWeights(w ScoringWeights) bool {
	return math.Abs(w.Sum()-1.0) < WeightSumTolerance
}
