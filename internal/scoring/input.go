package scoring

import "time"

// ScoringInput is one legislator's normalized activity for a reporting period.
// It is assembled by the collector and never mutated after construction.
type ScoringInput struct {
	MemberID    string    `json:"member_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Attendance     AttendanceData     `json:"attendance"`
	Legislation    LegislationData    `json:"legislation"`
	Bipartisanship BipartisanshipData `json:"bipartisanship"`
	CommitteeWork  CommitteeWorkData  `json:"committee_work"`
	Civility       CivilityData       `json:"civility"`
	TheaterRatio   TheaterRatioData   `json:"theater_ratio"`
}

// AttendanceData counts roll-call and hearing participation.
type AttendanceData struct {
	TotalVotes        int `json:"total_votes"`
	VotesParticipated int `json:"votes_participated"`
	TotalHearings     int `json:"total_hearings"`
	HearingsAttended  int `json:"hearings_attended"`
}

// LegislationData counts sponsored legislation by how far it advanced.
type LegislationData struct {
	BillsSponsored             int `json:"bills_sponsored"`
	BillsCosponsored           int `json:"bills_cosponsored"`
	BillsAdvancedPastCommittee int `json:"bills_advanced_past_committee"`
	BillsPassedChamber         int `json:"bills_passed_chamber"`
	BillsEnactedIntoLaw        int `json:"bills_enacted_into_law"`
	AmendmentsProposed         int `json:"amendments_proposed"`
	AmendmentsAdopted          int `json:"amendments_adopted"`
}

// BipartisanshipData counts cross-party cosponsorship activity in both directions.
type BipartisanshipData struct {
	CrossPartyCosponsorships int `json:"cross_party_cosponsorships"`
	TotalCosponsorships      int `json:"total_cosponsorships"`
	BipartisanBillsSponsored int `json:"bipartisan_bills_sponsored"`
	TotalBillsSponsored      int `json:"total_bills_sponsored"`
}

// CommitteeWorkData counts committee participation.
type CommitteeWorkData struct {
	CommitteeMemberships int `json:"committee_memberships"`
	HearingsAttended     int `json:"hearings_attended"`
	TotalHearings        int `json:"total_hearings"`
	MarkupsParticipated  int `json:"markups_participated"`
	TotalMarkups         int `json:"total_markups"`
}

// CivilityData counts conduct signals, negative and positive.
type CivilityData struct {
	PersonalAttacks             int `json:"personal_attacks"`
	Censures                    int `json:"censures"`
	EthicsComplaints            int `json:"ethics_complaints"`
	BipartisanCaucusMemberships int `json:"bipartisan_caucus_memberships"`
	CrossAisleCosponsorships    int `json:"cross_aisle_cosponsorships"`
}

// TheaterRatioData counts legislative substance against publicity activity.
type TheaterRatioData struct {
	LegislativeActions             int `json:"legislative_actions"`
	SocialMediaPosts               int `json:"social_media_posts"`
	MediaAppearances               int `json:"media_appearances"`
	NonLegislativePressConferences int `json:"non_legislative_press_conferences"`
}
