package types

import (
	"fmt"
	"time"
)

// Period names a reporting window understood by the API surface.
type Period string

const (
	PeriodSession   Period = "session"
	PeriodYearly    Period = "yearly"
	PeriodQuarterly Period = "quarterly"
)

// ParsePeriod validates an externally supplied period name. An empty value
// defaults to the current session.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodSession, nil
	case PeriodSession, PeriodYearly, PeriodQuarterly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid period %q: must be session, yearly, or quarterly", s)
	}
}

// Bounds maps a period to the (start, end] window ending at now.
// Sessions are two-year terms starting January 3 of the most recent odd year.
func (p Period) Bounds(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, now
	case PeriodQuarterly:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
		return start, now
	default:
		year := now.Year()
		if year%2 == 0 {
			year--
		}
		start := time.Date(year, time.January, 3, 0, 0, 0, 0, now.Location())
		if start.After(now) {
			start = start.AddDate(-2, 0, 0)
		}
		return start, now
	}
}
