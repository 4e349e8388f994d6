package database

import (
	"log/slog"

	"github.com/civictally/legiscore/internal/scoring"
)

// defaultHistoryLimit caps how many history entries one request returns
const defaultHistoryLimit = 50

// HistoryService provides scorecard persistence for the HTTP layer
type HistoryService struct {
	repo *Repository
}

// NewHistoryService creates a new history service
func NewHistoryService(repo *Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

// RecordAsync persists a scorecard in the background. Persistence is
// best-effort: a failed write is logged and never fails the request that
// produced the scorecard.
func (s *HistoryService) RecordAsync(card *scoring.CalculatedScorecard) {
	go func() {
		if err := s.repo.SaveScorecard(card); err != nil {
			slog.Error("Failed to persist scorecard",
				"member_id", card.MemberID,
				"error", err)
		}
	}()
}

// Record persists a scorecard synchronously
func (s *HistoryService) Record(card *scoring.CalculatedScorecard) error {
	return s.repo.SaveScorecard(card)
}

// History returns recent calculations for a member, newest first
func (s *HistoryService) History(memberID string, limit int) ([]ScorecardRow, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return s.repo.GetHistory(memberID, limit)
}
