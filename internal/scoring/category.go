package scoring

import (
	"encoding/json"
	"fmt"
)

// Category identifies one of the six fixed scoring categories.
type Category int

const (
	CategoryAttendance Category = iota
	CategoryLegislation
	CategoryBipartisanship
	CategoryCommitteeWork
	CategoryCivility
	CategoryTheaterRatio
)

// Categories lists every category in the fixed order they appear on a scorecard.
var Categories = [6]Category{
	CategoryAttendance,
	CategoryLegislation,
	CategoryBipartisanship,
	CategoryCommitteeWork,
	CategoryCivility,
	CategoryTheaterRatio,
}

// String returns the stable wire name of the category.
func (c Category) String() string {
	switch c {
	case CategoryAttendance:
		return "attendance"
	case CategoryLegislation:
		return "legislation"
	case CategoryBipartisanship:
		return "bipartisanship"
	case CategoryCommitteeWork:
		return "committee_work"
	case CategoryCivility:
		return "civility"
	case CategoryTheaterRatio:
		return "theater_ratio"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the category as its wire name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses a category from its wire name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for _, cat := range Categories {
		if cat.String() == name {
			*c = cat
			return nil
		}
	}

	return fmt.Errorf("unknown scoring category: %q", name)
}
