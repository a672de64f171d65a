package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"cineapp/models"
	"cineapp/monitoring"
	"cineapp/status"
	"cineapp/store"
)

// TicketService orchestrates a ticket operation end to end: validation,
// the atomic inventory adjustment, then the best-effort ledger writes.
// Inventory failures abort the whole operation; ledger failures do not,
// the seats stay reserved and the gap is logged and counted.
type TicketService struct {
	store     store.Store
	inventory *InventoryService
	ledger    *LedgerService
	logger    *slog.Logger
	newOpID   func() string
}

func NewTicketService(st store.Store, inventory *InventoryService, ledger *LedgerService, logger *slog.Logger) *TicketService {
	return &TicketService{
		store:     st,
		inventory: inventory,
		ledger:    ledger,
		logger:    logger,
		newOpID:   func() string { return uuid.New().String() },
	}
}

// Purchase reserves ticketCount seats on the showtime for the user and
// records the purchase. The showtime and movie arguments are the
// caller's last-known reads; the seat availability they carry is only
// used for the fast-path rejection, the authoritative check runs inside
// the store transaction.
func (s *TicketService) Purchase(ctx context.Context, userID string, showtime *models.Showtime, movie *models.Movie, ticketCount int) error {
	if userID == "" {
		return status.ErrNotAuthenticated
	}
	if ticketCount <= 0 {
		return status.ErrInvalidTicketCount
	}
	if showtime.AvailableSeats < ticketCount {
		monitoring.TrackTicketOperation("purchase", "precheck_rejected")
		return fmt.Errorf("precheck: %w", status.ErrInsufficientSeats)
	}

	if err := s.inventory.AdjustSeats(ctx, showtime.ID, -ticketCount); err != nil {
		monitoring.TrackTicketOperation("purchase", "rejected")
		return err
	}
	monitoring.TrackTicketsAdjusted("purchase", ticketCount)

	opID := s.newOpID()
	if err := s.ledger.RecordPurchase(ctx, opID, userID, showtime, movie, ticketCount); err != nil {
		s.logger.Error("seats reserved but ledger write failed",
			"user_id", userID,
			"showtime_id", showtime.ID,
			"operation_id", opID,
			"error", err,
		)
		monitoring.TrackRecorderFailure()
	}

	monitoring.TrackTicketOperation("purchase", "succeeded")
	return nil
}

// Cancel refunds the tickets of a purchase history entry. Cancellation
// operation ids derive from the purchase entry id, which both makes the
// ledger writes idempotent and rejects a second cancellation of the
// same entry.
func (s *TicketService) Cancel(ctx context.Context, userID string, entry *models.UserHistoryEntry) error {
	if userID == "" {
		return status.ErrNotAuthenticated
	}
	if !entry.Cancellable() {
		monitoring.TrackTicketOperation("cancellation", "rejected")
		return status.ErrNotCancellable
	}

	opID := cancelOperationID(entry)
	existing, err := s.store.FindHistoryByOperationID(ctx, opID)
	if err != nil {
		return fmt.Errorf("check prior cancellation: %w", err)
	}
	if existing != nil {
		monitoring.TrackTicketOperation("cancellation", "rejected")
		return status.ErrNotCancellable
	}

	showtime, err := s.store.GetShowtime(ctx, entry.ShowtimeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return status.ErrShowtimeNotFound
		}
		return err
	}
	movie, err := s.store.GetMovie(ctx, entry.MovieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return status.ErrMovieNotFound
		}
		return err
	}

	if err := s.inventory.AdjustSeats(ctx, showtime.ID, entry.NumberOfTickets); err != nil {
		monitoring.TrackTicketOperation("cancellation", "rejected")
		return err
	}
	monitoring.TrackTicketsAdjusted("cancellation", entry.NumberOfTickets)

	if err := s.ledger.RecordCancellation(ctx, opID, userID, entry, showtime, movie); err != nil {
		s.logger.Error("seats refunded but ledger write failed",
			"user_id", userID,
			"showtime_id", showtime.ID,
			"operation_id", opID,
			"error", err,
		)
		monitoring.TrackRecorderFailure()
	}

	monitoring.TrackTicketOperation("cancellation", "succeeded")
	return nil
}

func cancelOperationID(entry *models.UserHistoryEntry) string {
	return "cancel-" + entry.ID
}
