package collector

import (
	"strings"

	"github.com/civictally/legiscore/internal/types"
)

// legislativeStage is how far a sponsored record has advanced.
type legislativeStage int

const (
	stageNone legislativeStage = iota
	stageAdvancedPastCommittee
	stagePassedChamber
	stageEnacted
)

// stageRules is a best-effort text classifier over latest-action strings,
// evaluated top-down with the most advanced stage first. The phrases are
// pinned; tests depend on exact matching behavior. This is a heuristic over
// free text, not a grammar.
var stageRules = []struct {
	phrases []string
	stage   legislativeStage
}{
	{
		phrases: []string{"became public law", "signed by president", "enacted"},
		stage:   stageEnacted,
	},
	{
		phrases: []string{
			"passed house", "passed senate",
			"agreed to in house", "agreed to in senate",
			"resolution agreed to",
		},
		stage: stagePassedChamber,
	},
	{
		phrases: []string{"reported by", "ordered to be reported", "placed on calendar"},
		stage:   stageAdvancedPastCommittee,
	},
}

// classifyLatestAction maps a record's latest-action text to the most
// advanced stage it evidences. Records with no latest action get no stage
// credit but still count as sponsored.
func classifyLatestAction(latest *types.RecordAction) legislativeStage {
	if latest == nil || latest.Text == "" {
		return stageNone
	}

	text := strings.ToLower(latest.Text)
	for _, rule := range stageRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(text, phrase) {
				return rule.stage
			}
		}
	}

	return stageNone
}

// countAmendmentActions scans a record's action history for amendment
// activity. A single action can count as both proposed and adopted if its
// text carries both markers.
func countAmendmentActions(actions []types.RecordAction) (proposed, adopted int) {
	for _, action := range actions {
		text := strings.ToLower(action.Text)
		if !strings.Contains(text, "amendment") {
			continue
		}
		if strings.Contains(text, "proposed") {
			proposed++
		}
		if strings.Contains(text, "agreed to") || strings.Contains(text, "adopted") {
			adopted++
		}
	}
	return proposed, adopted
}
