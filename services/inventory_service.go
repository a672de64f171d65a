package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cineapp/models"
	"cineapp/monitoring"
	"cineapp/status"
	"cineapp/store"
)

// InventoryService owns every mutation of a showtime's seat pool. The
// check-and-adjust runs inside the store's atomic showtime update, so
// concurrent purchases observe each other's committed writes and two
// buyers can never share the last seat.
type InventoryService struct {
	store  store.Store
	logger *slog.Logger
}

func NewInventoryService(st store.Store, logger *slog.Logger) *InventoryService {
	return &InventoryService{store: st, logger: logger}
}

// AdjustSeats applies delta to the showtime's available seats. A negative
// delta is a purchase, a positive delta a cancellation refund. The
// availability check happens against the fresh value inside the store
// transaction, never against the caller's stale read.
//
// Refunds are clamped to the theater capacity; an attempted over-refund
// is counted as an anomaly but does not fail the operation.
func (s *InventoryService) AdjustSeats(ctx context.Context, showtimeID string, delta int) error {
	if delta == 0 {
		return nil
	}

	capacity := 0
	if delta > 0 {
		// Capacity is immutable, so reading it ahead of the
		// transaction cannot race with the adjustment.
		showtime, err := s.store.GetShowtime(ctx, showtimeID)
		if err != nil {
			return mapShowtimeErr(err)
		}
		theater, err := s.store.GetTheater(ctx, showtime.TheaterID)
		if err == nil {
			capacity = theater.Capacity
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("theater for showtime %s: %w", showtimeID, err)
		}
	}

	err := s.store.UpdateShowtimeAtomic(ctx, showtimeID, func(showtime *models.Showtime) error {
		next := showtime.AvailableSeats + delta
		if next < 0 {
			return status.ErrInsufficientSeats
		}
		if capacity > 0 && next > capacity {
			s.logger.Warn("refund exceeds theater capacity, clamping",
				"showtime_id", showtimeID,
				"seats", next,
				"capacity", capacity,
			)
			monitoring.TrackRefundClamp()
			next = capacity
		}
		showtime.AvailableSeats = next
		return nil
	})
	if err != nil {
		return mapShowtimeErr(err)
	}
	return nil
}

func mapShowtimeErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return status.ErrShowtimeNotFound
	}
	return err
}
