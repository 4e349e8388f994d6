package collector

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/civictally/legiscore/internal/scoring"
	"github.com/civictally/legiscore/internal/types"
)

// defaultPageLimit caps how many records are requested per listing call.
const defaultPageLimit = 250

// defaultCommitteeMemberships is a documented placeholder: no live committee
// roster source is integrated, so every member is assumed to sit on two
// committees and the category is reported as partial.
const defaultCommitteeMemberships = 2

// RecordSource is the external legislative record provider. Implementations
// fail with a member-not-found error for unknown identifiers and otherwise
// propagate upstream status information unchanged.
type RecordSource interface {
	GetMemberProfile(ctx context.Context, memberID string) (*types.MemberProfile, error)
	GetSponsoredRecords(ctx context.Context, memberID string, limit int) ([]types.LegislativeRecord, error)
	GetCosponsoredRecords(ctx context.Context, memberID string, limit int) ([]types.LegislativeRecord, error)
}

// SourceStatus tags how a category's data bundle was obtained. It is purely
// informational and never affects scoring math.
type SourceStatus string

const (
	SourceLive    SourceStatus = "live"
	SourcePartial SourceStatus = "partial"
	SourceDefault SourceStatus = "default"
)

// DataSourceReport records, per category, whether the bundle came from live
// records, partially synthesized data, or documented neutral defaults.
type DataSourceReport struct {
	Attendance     SourceStatus `json:"attendance"`
	Legislation    SourceStatus `json:"legislation"`
	Bipartisanship SourceStatus `json:"bipartisanship"`
	CommitteeWork  SourceStatus `json:"committee_work"`
	Civility       SourceStatus `json:"civility"`
	TheaterRatio   SourceStatus `json:"theater_ratio"`
}

// Result is the output of one collection run.
type Result struct {
	Input       scoring.ScoringInput `json:"input"`
	DataSources DataSourceReport     `json:"data_sources"`
}

// Collector turns raw records from a RecordSource into a normalized
// ScoringInput. It holds no state between runs and performs no retries;
// transport-level resilience belongs to the source implementation.
type Collector struct {
	source    RecordSource
	pageLimit int
}

// New creates a collector reading from the given source.
func New(source RecordSource) *Collector {
	return &Collector{
		source:    source,
		pageLimit: defaultPageLimit,
	}
}

// Collect fetches the member profile plus sponsored and cosponsored records
// concurrently and assembles the scoring input for the period. The three
// reads share no state and join fail-fast: any single failure fails the
// whole collection with no partial result.
func (c *Collector) Collect(ctx context.Context, memberID string, periodStart, periodEnd time.Time) (*Result, error) {
	var (
		profile     *types.MemberProfile
		sponsored   []types.LegislativeRecord
		cosponsored []types.LegislativeRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		profile, err = c.source.GetMemberProfile(gctx, memberID)
		return err
	})

	g.Go(func() error {
		var err error
		sponsored, err = c.source.GetSponsoredRecords(gctx, memberID, c.pageLimit)
		return err
	})

	g.Go(func() error {
		var err error
		cosponsored, err = c.source.GetCosponsoredRecords(gctx, memberID, c.pageLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sponsored = filterByPeriod(sponsored, periodStart, periodEnd)
	cosponsored = filterByPeriod(cosponsored, periodStart, periodEnd)

	input := scoring.ScoringInput{
		MemberID:       memberID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Legislation:    buildLegislation(sponsored),
		Bipartisanship: buildBipartisanship(profile.Party, sponsored, cosponsored),
		CommitteeWork: scoring.CommitteeWorkData{
			CommitteeMemberships: defaultCommitteeMemberships,
		},
		// Attendance, Civility, and TheaterRatio stay all-zero: no live
		// source is integrated and their scorers treat zero as neutral.
	}

	return &Result{
		Input: input,
		// This mapping is fixed by which bundles use real versus
		// synthesized data, not computed at runtime.
		DataSources: DataSourceReport{
			Attendance:     SourceDefault,
			Legislation:    SourceLive,
			Bipartisanship: SourcePartial,
			CommitteeWork:  SourcePartial,
			Civility:       SourceDefault,
			TheaterRatio:   SourceDefault,
		},
	}, nil
}

// filterByPeriod keeps records whose update date falls within [start, end].
func filterByPeriod(records []types.LegislativeRecord, start, end time.Time) []types.LegislativeRecord {
	filtered := make([]types.LegislativeRecord, 0, len(records))
	for _, r := range records {
		if r.UpdateDate.Before(start) || r.UpdateDate.After(end) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// buildLegislation classifies each sponsored record by its most advanced
// stage. Stage credit cascades: an enacted bill necessarily passed a chamber
// and advanced past committee, so it counts toward all three.
func buildLegislation(sponsored []types.LegislativeRecord) scoring.LegislationData {
	data := scoring.LegislationData{
		BillsSponsored: len(sponsored),
	}

	for _, record := range sponsored {
		switch classifyLatestAction(record.LatestAction) {
		case stageEnacted:
			data.BillsEnactedIntoLaw++
			data.BillsPassedChamber++
			data.BillsAdvancedPastCommittee++
		case stagePassedChamber:
			data.BillsPassedChamber++
			data.BillsAdvancedPastCommittee++
		case stageAdvancedPastCommittee:
			data.BillsAdvancedPastCommittee++
		}

		proposed, adopted := countAmendmentActions(record.Actions)
		data.AmendmentsProposed += proposed
		data.AmendmentsAdopted += adopted
	}

	return data
}

// buildBipartisanship counts cross-party activity in both directions using
// the member's own party as the reference point.
func buildBipartisanship(memberParty string, sponsored, cosponsored []types.LegislativeRecord) scoring.BipartisanshipData {
	data := scoring.BipartisanshipData{
		TotalCosponsorships: len(cosponsored),
		TotalBillsSponsored: len(sponsored),
	}

	for _, record := range cosponsored {
		if len(record.Sponsors) > 0 && record.Sponsors[0].Party != memberParty {
			data.CrossPartyCosponsorships++
		}
	}

	for _, record := range sponsored {
		for _, cosponsor := range record.Cosponsors {
			if cosponsor.Party != memberParty {
				data.BipartisanBillsSponsored++
				break
			}
		}
	}

	return data
}
