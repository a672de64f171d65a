package services

import (
	"context"
	"fmt"
	"time"

	"cineapp/models"
	"cineapp/status"
	"cineapp/store"
)

// LedgerService appends the immutable audit trail after a successful
// inventory adjustment: one transaction record and one user history
// entry per operation. Appends are upserts keyed by the operation id,
// so a retried recording never duplicates ledger rows.
//
// The appends run after the seat transaction already committed; a
// failure here leaves the reservation in place (accepted inconsistency,
// surfaced through logs and the recorder failure counter).
type LedgerService struct {
	store store.Store
	now   func() time.Time
}

func NewLedgerService(st store.Store) *LedgerService {
	return &LedgerService{store: st, now: time.Now}
}

func (s *LedgerService) RecordPurchase(ctx context.Context, opID, userID string, showtime *models.Showtime, movie *models.Movie, ticketCount int) error {
	now := s.now().UTC()
	total := showtime.TotalPrice(ticketCount)

	txn := &models.Transaction{
		OperationID:     opID,
		UserID:          userID,
		ShowtimeID:      showtime.ID,
		MovieID:         showtime.MovieID,
		NumberOfTickets: ticketCount,
		TotalAmount:     total,
		TransactionDate: now,
		TransactionType: models.TransactionTypePurchase,
		Status:          models.TransactionStatusCompleted,
	}
	if err := s.store.AppendTransaction(ctx, txn); err != nil {
		return fmt.Errorf("%w: transaction: %v", status.ErrRecorderWrite, err)
	}

	entry := &models.UserHistoryEntry{
		OperationID:       opID,
		UserID:            userID,
		MovieID:           showtime.MovieID,
		ShowtimeID:        showtime.ID,
		Action:            models.HistoryActionPurchased,
		ActionDate:        now,
		Details:           fmt.Sprintf("%d tickets for %s", ticketCount, movie.Title),
		MoviePosterURL:    movie.PosterURL,
		NumberOfTickets:   ticketCount,
		TotalAmount:       total,
		ShowtimeStartTime: showtime.StartTime,
		DurationMinutes:   movie.DurationMinutes,
	}
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("%w: history entry: %v", status.ErrRecorderWrite, err)
	}

	return nil
}

// RecordCancellation appends the refund side of the ledger: the
// transaction amount is the purchase total negated, and the history
// entry references the refunded ticket count. The original purchase
// entry is never touched.
func (s *LedgerService) RecordCancellation(ctx context.Context, opID, userID string, purchase *models.UserHistoryEntry, showtime *models.Showtime, movie *models.Movie) error {
	now := s.now().UTC()
	refund := purchase.TotalAmount.Neg()

	txn := &models.Transaction{
		OperationID:     opID,
		UserID:          userID,
		ShowtimeID:      purchase.ShowtimeID,
		MovieID:         purchase.MovieID,
		NumberOfTickets: purchase.NumberOfTickets,
		TotalAmount:     refund,
		TransactionDate: now,
		TransactionType: models.TransactionTypeCancellation,
		Status:          models.TransactionStatusCompleted,
	}
	if err := s.store.AppendTransaction(ctx, txn); err != nil {
		return fmt.Errorf("%w: transaction: %v", status.ErrRecorderWrite, err)
	}

	entry := &models.UserHistoryEntry{
		OperationID:       opID,
		UserID:            userID,
		MovieID:           purchase.MovieID,
		ShowtimeID:        purchase.ShowtimeID,
		Action:            models.HistoryActionCancelled,
		ActionDate:        now,
		Details:           fmt.Sprintf("%d tickets cancelled for %s", purchase.NumberOfTickets, movie.Title),
		MoviePosterURL:    movie.PosterURL,
		NumberOfTickets:   purchase.NumberOfTickets,
		TotalAmount:       refund,
		ShowtimeStartTime: purchase.ShowtimeStartTime,
		DurationMinutes:   purchase.DurationMinutes,
	}
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("%w: history entry: %v", status.ErrRecorderWrite, err)
	}

	return nil
}
