package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/civictally/legiscore/internal/errors"
	"github.com/civictally/legiscore/internal/monitoring"
	"github.com/civictally/legiscore/internal/resilience"
	"github.com/civictally/legiscore/internal/types"
)

const defaultBaseURL = "https://api.congress.gov/v3"

// congressMemberResponse wraps the member detail payload
type congressMemberResponse struct {
	Member congressMember `json:"member"`
}

type congressMember struct {
	BioguideID   string `json:"bioguideId"`
	DirectName   string `json:"directOrderName"`
	Name         string `json:"name"`
	State        string `json:"state"`
	PartyHistory []struct {
		PartyAbbreviation string `json:"partyAbbreviation"`
		PartyName         string `json:"partyName"`
	} `json:"partyHistory"`
	Terms []struct {
		Chamber string `json:"chamber"`
	} `json:"terms"`
}

// congressLegislationResponse wraps the sponsored and cosponsored listing
// payloads. Only one of the two arrays is populated per endpoint.
type congressLegislationResponse struct {
	Sponsored   []congressRecord `json:"sponsoredLegislation"`
	Cosponsored []congressRecord `json:"cosponsoredLegislation"`
}

type congressRecord struct {
	Number       json.Number      `json:"number"`
	Title        string           `json:"title"`
	UpdateDate   string           `json:"updateDate"`
	LatestAction *congressAction  `json:"latestAction"`
	Actions      []congressAction `json:"actions"`
	Sponsors     []congressPerson `json:"sponsors"`
	Cosponsors   []congressPerson `json:"cosponsors"`
}

type congressAction struct {
	Text       string `json:"text"`
	ActionDate string `json:"actionDate"`
}

type congressPerson struct {
	BioguideID string `json:"bioguideId"`
	FullName   string `json:"fullName"`
	Party      string `json:"party"`
	State      string `json:"state"`
}

// CongressAdapter fetches member profiles and legislative records from the
// Congress.gov API. It satisfies the collector's RecordSource interface.
type CongressAdapter struct {
	apiKey  string
	baseURL string
	client  *resilience.HTTPClient
	health  *resilience.HealthRegistry
	logger  *monitoring.Logger
	retry   resilience.RetryConfig
}

// NewCongressAdapter creates an adapter with circuit breaker protection and
// transient-failure retries. A nil health registry disables outcome tracking;
// a nil logger disables per-call logging.
func NewCongressAdapter(apiKey string, health *resilience.HealthRegistry, logger *monitoring.Logger) *CongressAdapter {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 3,
	})

	return &CongressAdapter{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  resilience.NewHTTPClient(30*time.Second, cb),
		health:  health,
		logger:  logger,
		retry:   resilience.DefaultRetryConfig(),
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (a *CongressAdapter) SetBaseURL(base string) {
	a.baseURL = base
}

// GetMemberProfile fetches a member's profile by bioguide identifier.
func (a *CongressAdapter) GetMemberProfile(ctx context.Context, memberID string) (*types.MemberProfile, error) {
	endpoint := fmt.Sprintf("%s/member/%s", a.baseURL, url.PathEscape(memberID))

	body, err := a.fetchJSON(ctx, endpoint, memberID, nil)
	if err != nil {
		return nil, err
	}

	var payload congressMemberResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.WrapError(err, "failed to decode member profile for %s", memberID)
	}

	m := payload.Member

	name := m.DirectName
	if name == "" {
		name = m.Name
	}

	// The party history is ordered oldest first; the last entry is current.
	party := ""
	if len(m.PartyHistory) > 0 {
		current := m.PartyHistory[len(m.PartyHistory)-1]
		party = current.PartyAbbreviation
		if party == "" {
			party = abbreviateParty(current.PartyName)
		}
	}

	chamber := ""
	if len(m.Terms) > 0 {
		chamber = m.Terms[len(m.Terms)-1].Chamber
	}

	return &types.MemberProfile{
		BioguideID: m.BioguideID,
		Name:       name,
		Party:      party,
		State:      m.State,
		Chamber:    chamber,
	}, nil
}

// GetSponsoredRecords fetches the member's sponsored legislation listing.
func (a *CongressAdapter) GetSponsoredRecords(ctx context.Context, memberID string, limit int) ([]types.LegislativeRecord, error) {
	endpoint := fmt.Sprintf("%s/member/%s/sponsored-legislation", a.baseURL, url.PathEscape(memberID))

	body, err := a.fetchJSON(ctx, endpoint, memberID, map[string]string{"limit": strconv.Itoa(limit)})
	if err != nil {
		return nil, err
	}

	var payload congressLegislationResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.WrapError(err, "failed to decode sponsored legislation for %s", memberID)
	}

	return convertRecords(payload.Sponsored), nil
}

// GetCosponsoredRecords fetches the member's cosponsored legislation listing.
func (a *CongressAdapter) GetCosponsoredRecords(ctx context.Context, memberID string, limit int) ([]types.LegislativeRecord, error) {
	endpoint := fmt.Sprintf("%s/member/%s/cosponsored-legislation", a.baseURL, url.PathEscape(memberID))

	body, err := a.fetchJSON(ctx, endpoint, memberID, map[string]string{"limit": strconv.Itoa(limit)})
	if err != nil {
		return nil, err
	}

	var payload congressLegislationResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.WrapError(err, "failed to decode cosponsored legislation for %s", memberID)
	}

	return convertRecords(payload.Cosponsored), nil
}

// fetchJSON performs a GET with the API key attached, retrying transient
// upstream failures. Not-found and other 4xx outcomes short-circuit.
func (a *CongressAdapter) fetchJSON(ctx context.Context, endpoint, memberID string, params map[string]string) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.WrapError(err, "invalid upstream URL")
	}

	query := u.Query()
	query.Set("format", "json")
	if a.apiKey != "" {
		query.Set("api_key", a.apiKey)
	}
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	var body []byte
	err = resilience.RetryWithConfig(ctx, a.retry, func() error {
		b, reqErr := a.doRequest(ctx, u.String(), memberID)
		if reqErr != nil {
			return reqErr
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// doRequest executes one attempt: send, map status codes to the error
// taxonomy, read the body.
func (a *CongressAdapter) doRequest(ctx context.Context, requestURL, memberID string) ([]byte, error) {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": "legiscore/1.0",
	}

	start := time.Now()

	resp, err := a.client.DoRequest(ctx, http.MethodGet, requestURL, headers)
	if err != nil {
		a.recordOutcome(false)
		a.logCall(requestURL, 0, time.Since(start), false)
		return nil, errors.NewUpstreamError("congress", 0, err)
	}
	defer errors.SafeClose(resp.Body, "upstream response body")

	a.logCall(requestURL, resp.StatusCode, time.Since(start), resp.StatusCode < 500)

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read
	case resp.StatusCode == http.StatusNotFound:
		a.recordOutcome(true)
		return nil, errors.NewMemberNotFoundError(memberID)
	case resp.StatusCode == http.StatusTooManyRequests:
		a.recordOutcome(false)
		return nil, errors.NewRateLimitError(resp.Header.Get("Retry-After"))
	default:
		a.recordOutcome(false)
		io.Copy(io.Discard, resp.Body)
		return nil, errors.NewUpstreamError("congress", resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.recordOutcome(false)
		return nil, errors.NewUpstreamError("congress", resp.StatusCode, err)
	}

	a.recordOutcome(true)
	return body, nil
}

func (a *CongressAdapter) logCall(requestURL string, statusCode int, duration time.Duration, success bool) {
	if a.logger == nil {
		return
	}

	// The raw URL carries the api_key query parameter; log the path only.
	endpoint := requestURL
	if u, err := url.Parse(requestURL); err == nil {
		endpoint = u.Path
	}

	a.logger.UpstreamAPILogger("congress", http.MethodGet, endpoint, statusCode, duration, success)
}

func (a *CongressAdapter) recordOutcome(success bool) {
	if a.health != nil {
		a.health.RecordRequest("congress", success)
	}
}

// GetClientStats returns circuit breaker statistics for the health endpoint
func (a *CongressAdapter) GetClientStats() map[string]interface{} {
	return a.client.GetStats()
}

// Close releases the adapter's HTTP resources
func (a *CongressAdapter) Close() error {
	return a.client.Close()
}

// convertRecords normalizes raw listing entries into legislative records.
func convertRecords(raw []congressRecord) []types.LegislativeRecord {
	records := make([]types.LegislativeRecord, 0, len(raw))
	for _, r := range raw {
		record := types.LegislativeRecord{
			Number:     r.Number.String(),
			Title:      r.Title,
			UpdateDate: parseUpdateDate(r.UpdateDate),
			Sponsors:   convertPersons(r.Sponsors),
			Cosponsors: convertPersons(r.Cosponsors),
		}

		if r.LatestAction != nil && r.LatestAction.Text != "" {
			record.LatestAction = &types.RecordAction{
				Text:       r.LatestAction.Text,
				ActionDate: r.LatestAction.ActionDate,
			}
		}

		for _, action := range r.Actions {
			record.Actions = append(record.Actions, types.RecordAction{
				Text:       action.Text,
				ActionDate: action.ActionDate,
			})
		}

		records = append(records, record)
	}
	return records
}

func convertPersons(raw []congressPerson) []types.SponsorRef {
	if len(raw) == 0 {
		return nil
	}
	refs := make([]types.SponsorRef, 0, len(raw))
	for _, p := range raw {
		refs = append(refs, types.SponsorRef{
			BioguideID: p.BioguideID,
			FullName:   p.FullName,
			Party:      p.Party,
			State:      p.State,
		})
	}
	return refs
}

// parseUpdateDate accepts both full timestamps and date-only values, which
// the upstream mixes freely. Unparseable values become the zero time so the
// period filter drops them.
func parseUpdateDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// abbreviateParty maps full party names to their single letter codes.
func abbreviateParty(name string) string {
	switch name {
	case "Democratic", "Democrat":
		return "D"
	case "Republican":
		return "R"
	case "Independent":
		return "I"
	default:
		return name
	}
}
