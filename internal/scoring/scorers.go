package scoring

import "math"

// CategoryScore is the output of a single category scorer. Details carry the
// full audit trail for display; they are never fed back into computation.
type CategoryScore struct {
	Category      Category     `json:"category"`
	RawScore      float64      `json:"raw_score"`
	Weight        float64      `json:"weight"`
	WeightedScore float64      `json:"weighted_score"`
	Details       ScoreDetails `json:"details"`
}

// ScoreDetails is the human-readable audit trail of one category score.
type ScoreDetails struct {
	Description string             `json:"description"`
	Inputs      map[string]float64 `json:"inputs"`
	Formula     string             `json:"formula"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// participationRate is num/den expressed as a percentage, or empty when the
// denominator is zero. Each scorer documents its own empty-denominator policy.
func participationRate(num, den int, empty float64) float64 {
	if den == 0 {
		return empty
	}
	return float64(num) / float64(den) * 100
}

func newScore(c Category, raw, weight float64, details ScoreDetails) CategoryScore {
	return CategoryScore{
		Category:      c,
		RawScore:      round1(raw),
		Weight:        weight,
		WeightedScore: round1(round1(raw) * weight),
		Details:       details,
	}
}

// ScoreAttendance scores roll-call and hearing participation. Empty
// denominators are not penalized: a period with no votes scores 100.
func ScoreAttendance(d AttendanceData, weight float64) CategoryScore {
	voteRate := participationRate(d.VotesParticipated, d.TotalVotes, 100)
	hearingRate := participationRate(d.HearingsAttended, d.TotalHearings, 100)

	raw := clamp(math.Round(voteRate*0.7+hearingRate*0.3), 0, 100)

	return newScore(CategoryAttendance, raw, weight, ScoreDetails{
		Description: "Vote and hearing participation rates",
		Inputs: map[string]float64{
			"total_votes":        float64(d.TotalVotes),
			"votes_participated": float64(d.VotesParticipated),
			"total_hearings":     float64(d.TotalHearings),
			"hearings_attended":  float64(d.HearingsAttended),
		},
		Formula: "clamp(round(voteRate*0.7 + hearingRate*0.3), 0, 100); empty denominators count as 100",
	})
}

// ScoreLegislation scores sponsored legislation on a log scale so bulk
// low-value actions (mass cosponsorship) cannot dominate linearly. Zero
// points is a hard floor of 0; any activity at all starts at 10.
func ScoreLegislation(d LegislationData, weight float64) CategoryScore {
	points := d.BillsSponsored*3 +
		d.BillsCosponsored*1 +
		d.BillsAdvancedPastCommittee*5 +
		d.BillsPassedChamber*8 +
		d.BillsEnactedIntoLaw*15 +
		d.AmendmentsProposed*2 +
		d.AmendmentsAdopted*4

	raw := 0.0
	if points > 0 {
		raw = clamp(math.Round(25*math.Log2(float64(points)+1)), 10, 100)
	}

	return newScore(CategoryLegislation, raw, weight, ScoreDetails{
		Description: "Weighted legislative output on a logarithmic scale",
		Inputs: map[string]float64{
			"bills_sponsored":               float64(d.BillsSponsored),
			"bills_cosponsored":             float64(d.BillsCosponsored),
			"bills_advanced_past_committee": float64(d.BillsAdvancedPastCommittee),
			"bills_passed_chamber":          float64(d.BillsPassedChamber),
			"bills_enacted_into_law":        float64(d.BillsEnactedIntoLaw),
			"amendments_proposed":           float64(d.AmendmentsProposed),
			"amendments_adopted":            float64(d.AmendmentsAdopted),
			"points":                        float64(points),
		},
		Formula: "points = sponsored*3 + cosponsored*1 + advanced*5 + passed*8 + enacted*15 + amendProposed*2 + amendAdopted*4; 0 points -> 0, else clamp(round(25*log2(points+1)), 10, 100)",
	})
}

// ScoreBipartisanship scores cross-party activity in both directions. An
// empty denominator is neutral (50), not penalized.
func ScoreBipartisanship(d BipartisanshipData, weight float64) CategoryScore {
	crossPartyRate := participationRate(d.CrossPartyCosponsorships, d.TotalCosponsorships, 50)
	sponsorRate := participationRate(d.BipartisanBillsSponsored, d.TotalBillsSponsored, 50)

	raw := clamp(math.Round(crossPartyRate*0.6+sponsorRate*0.4), 0, 100)

	return newScore(CategoryBipartisanship, raw, weight, ScoreDetails{
		Description: "Cross-party cosponsorship rates, given and received",
		Inputs: map[string]float64{
			"cross_party_cosponsorships": float64(d.CrossPartyCosponsorships),
			"total_cosponsorships":       float64(d.TotalCosponsorships),
			"bipartisan_bills_sponsored": float64(d.BipartisanBillsSponsored),
			"total_bills_sponsored":      float64(d.TotalBillsSponsored),
		},
		Formula: "clamp(round(crossPartyRate*0.6 + bipartisanSponsorRate*0.4), 0, 100); empty denominators count as 50",
	})
}

// ScoreCommitteeWork scores hearing and markup participation plus a small
// membership bonus. Empty denominators are neutral (50).
func ScoreCommitteeWork(d CommitteeWorkData, weight float64) CategoryScore {
	hearingRate := participationRate(d.HearingsAttended, d.TotalHearings, 50)
	markupRate := participationRate(d.MarkupsParticipated, d.TotalMarkups, 50)
	membershipBonus := clamp(float64(d.CommitteeMemberships)*3, 0, 10)

	raw := clamp(math.Round(hearingRate*0.5+markupRate*0.4+membershipBonus), 0, 100)

	return newScore(CategoryCommitteeWork, raw, weight, ScoreDetails{
		Description: "Committee hearing and markup participation with membership bonus",
		Inputs: map[string]float64{
			"committee_memberships": float64(d.CommitteeMemberships),
			"hearings_attended":     float64(d.HearingsAttended),
			"total_hearings":        float64(d.TotalHearings),
			"markups_participated":  float64(d.MarkupsParticipated),
			"total_markups":         float64(d.TotalMarkups),
		},
		Formula: "clamp(round(hearingRate*0.5 + markupRate*0.4 + clamp(memberships*3, 0, 10)), 0, 100); empty denominators count as 50",
	})
}

// ScoreCivility starts every member at a baseline of 80, deducts for
// documented conduct incidents and credits cross-aisle engagement.
func ScoreCivility(d CivilityData, weight float64) CategoryScore {
	deductions := float64(d.PersonalAttacks*10 + d.Censures*25 + d.EthicsComplaints*5)
	caucusBonus := clamp(float64(d.BipartisanCaucusMemberships)*5, 0, 15)
	cosponsorBonus := clamp(math.Floor(float64(d.CrossAisleCosponsorships)/5), 0, 10)

	raw := clamp(math.Round(80-deductions+caucusBonus+cosponsorBonus), 0, 100)

	return newScore(CategoryCivility, raw, weight, ScoreDetails{
		Description: "Baseline 80 minus conduct deductions plus cross-aisle bonuses",
		Inputs: map[string]float64{
			"personal_attacks":              float64(d.PersonalAttacks),
			"censures":                      float64(d.Censures),
			"ethics_complaints":             float64(d.EthicsComplaints),
			"bipartisan_caucus_memberships": float64(d.BipartisanCaucusMemberships),
			"cross_aisle_cosponsorships":    float64(d.CrossAisleCosponsorships),
		},
		Formula: "clamp(round(80 - (attacks*10 + censures*25 + ethics*5) + clamp(caucuses*5, 0, 15) + clamp(floor(crossAisle/5), 0, 10)), 0, 100)",
	})
}

// ScoreTheaterRatio scores the ratio of legislative actions to publicity
// activity. No activity of either kind is a neutral 50 (no signal).
func ScoreTheaterRatio(d TheaterRatioData, weight float64) CategoryScore {
	theaterActivity := d.SocialMediaPosts + d.MediaAppearances + d.NonLegislativePressConferences
	ratio := float64(d.LegislativeActions) / float64(theaterActivity+1)

	var raw float64
	switch {
	case d.LegislativeActions == 0 && theaterActivity == 0:
		raw = 50
	case ratio >= 1.0:
		raw = clamp(math.Round(90+(ratio-1)*5), 90, 100)
	case ratio >= 0.5:
		raw = math.Round(70 + (ratio-0.5)*40)
	case ratio >= 0.2:
		raw = math.Round(40 + (ratio-0.2)*100)
	default:
		raw = clamp(math.Round(ratio*200), 0, 39)
	}

	return newScore(CategoryTheaterRatio, raw, weight, ScoreDetails{
		Description: "Legislative substance relative to media and publicity activity",
		Inputs: map[string]float64{
			"legislative_actions":               float64(d.LegislativeActions),
			"social_media_posts":                float64(d.SocialMediaPosts),
			"media_appearances":                 float64(d.MediaAppearances),
			"non_legislative_press_conferences": float64(d.NonLegislativePressConferences),
			"ratio":                             ratio,
		},
		Formula: "ratio = legislativeActions/(theater+1); both zero -> 50; ratio>=1 -> clamp(round(90+(ratio-1)*5), 90, 100); 0.5<=ratio<1 -> round(70+(ratio-0.5)*40); 0.2<=ratio<0.5 -> round(40+(ratio-0.2)*100); else clamp(round(ratio*200), 0, 39)",
	})
}
