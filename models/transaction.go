package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypePurchase     = "purchase"
	TransactionTypeCancellation = "cancellation"

	TransactionStatusCompleted = "completed"
)

// Transaction is one row of the append-only monetary audit trail.
// TotalAmount is signed: positive for a purchase, negative for the
// refund recorded by a cancellation. Never mutated once written.
type Transaction struct {
	ID              string          `json:"id"`
	OperationID     string          `json:"operationId"`
	UserID          string          `json:"userId"`
	ShowtimeID      string          `json:"showtimeId"`
	MovieID         string          `json:"movieId"`
	NumberOfTickets int             `json:"numberOfTickets"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType string          `json:"transactionType"`
	Status          string          `json:"status"`
}
