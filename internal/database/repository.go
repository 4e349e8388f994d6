package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/civictally/legiscore/internal/scoring"
)

// ScorecardRow is one persisted scorecard calculation. Payload carries the
// full scorecard JSON so history entries replay exactly what was served.
type ScorecardRow struct {
	ID                 int64     `json:"id"`
	MemberID           string    `json:"member_id"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	TotalScore         float64   `json:"total_score"`
	Grade              string    `json:"grade"`
	MethodologyVersion string    `json:"methodology_version"`
	CalculatedAt       time.Time `json:"calculated_at"`
	Payload            string    `json:"-"`
}

// Scorecard decodes the stored payload back into a full scorecard
func (r *ScorecardRow) Scorecard() (*scoring.CalculatedScorecard, error) {
	var card scoring.CalculatedScorecard
	if err := json.Unmarshal([]byte(r.Payload), &card); err != nil {
		return nil, fmt.Errorf("failed to decode stored scorecard: %w", err)
	}
	return &card, nil
}

// Repository handles scorecard persistence
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveScorecard persists one calculated scorecard
func (r *Repository) SaveScorecard(card *scoring.CalculatedScorecard) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to encode scorecard: %w", err)
	}

	stmt, err := r.db.GetPreparedStatement("insert_scorecard")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		card.MemberID,
		card.PeriodStart,
		card.PeriodEnd,
		card.TotalScore,
		card.Grade,
		card.MethodologyVersion,
		card.CalculatedAt,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save scorecard: %w", err)
	}

	return nil
}

// GetHistory returns the most recent calculations for a member, newest first
func (r *Repository) GetHistory(memberID string, limit int) ([]ScorecardRow, error) {
	stmt, err := r.db.GetPreparedStatement("get_history")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scorecard history: %w", err)
	}
	defer rows.Close()

	var history []ScorecardRow
	for rows.Next() {
		var row ScorecardRow
		if err := rows.Scan(
			&row.ID,
			&row.MemberID,
			&row.PeriodStart,
			&row.PeriodEnd,
			&row.TotalScore,
			&row.Grade,
			&row.MethodologyVersion,
			&row.CalculatedAt,
			&row.Payload,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scorecard row: %w", err)
		}
		history = append(history, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scorecard rows: %w", err)
	}

	return history, nil
}
