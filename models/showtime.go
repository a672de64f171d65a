package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is a scheduled screening with a finite seat pool.
// AvailableSeats is only ever mutated through the store's atomic
// showtime update; direct writes would reintroduce lost updates.
type Showtime struct {
	ID             string          `json:"id"`
	MovieID        string          `json:"movieId"`
	TheaterID      string          `json:"theaterId"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	Price          decimal.Decimal `json:"price"`
	AvailableSeats int             `json:"availableSeats"`
}

// TotalPrice returns the price of count tickets.
func (s *Showtime) TotalPrice(count int) decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(count)))
}
