package types

import "time"

// SponsorRef identifies a sponsor or cosponsor attached to a record.
type SponsorRef struct {
	BioguideID string `json:"bioguide_id"`
	FullName   string `json:"full_name"`
	Party      string `json:"party"`
	State      string `json:"state"`
}

// RecordAction is one entry in a record's action history.
type RecordAction struct {
	Text       string `json:"text"`
	ActionDate string `json:"action_date"`
}

// LegislativeRecord is one normalized bill, resolution, or amendment pulled
// from the external record source. LatestAction may be absent for records
// with no floor or committee activity yet.
type LegislativeRecord struct {
	Number       string         `json:"number"`
	Title        string         `json:"title"`
	UpdateDate   time.Time      `json:"update_date"`
	LatestAction *RecordAction  `json:"latest_action,omitempty"`
	Actions      []RecordAction `json:"actions,omitempty"`
	Sponsors     []SponsorRef   `json:"sponsors,omitempty"`
	Cosponsors   []SponsorRef   `json:"cosponsors,omitempty"`
}

// MemberProfile is the subset of a member's profile the collector needs.
type MemberProfile struct {
	BioguideID string `json:"bioguide_id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	State      string `json:"state"`
	Chamber    string `json:"chamber"`
}
