package services

import (
	"context"

	"cineapp/models"
	"cineapp/status"
	"cineapp/store"
)

// HistoryService reads the user-facing side of the ledger.
type HistoryService struct {
	store store.Store
}

func NewHistoryService(st store.Store) *HistoryService {
	return &HistoryService{store: st}
}

// ListUserHistory returns the user's purchase/cancellation entries,
// newest first.
func (s *HistoryService) ListUserHistory(ctx context.Context, userID string) ([]*models.UserHistoryEntry, error) {
	if userID == "" {
		return nil, status.ErrNotAuthenticated
	}
	return s.store.ListUserHistory(ctx, userID)
}
