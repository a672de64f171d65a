package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_operations_total",
			Help: "Ticket purchase/cancellation outcomes",
		},
		[]string{"operation", "status"},
	)

	ticketsAdjusted = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tickets_adjusted_per_operation",
			Help:    "Ticket count per successful inventory adjustment",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
		[]string{"operation"},
	)

	recorderFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_recorder_failures_total",
			Help: "Ledger appends that failed after the seat adjustment committed",
		},
	)

	refundClamps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refund_capacity_clamps_total",
			Help: "Cancellation refunds clamped to theater capacity",
		},
	)
)

// TrackTicketOperation records the outcome of a purchase or cancellation.
func TrackTicketOperation(operation, status string) {
	ticketOperations.WithLabelValues(operation, status).Inc()
}

// TrackTicketsAdjusted records the ticket count of a successful adjustment.
func TrackTicketsAdjusted(operation string, count int) {
	ticketsAdjusted.WithLabelValues(operation).Observe(float64(count))
}

// TrackRecorderFailure counts a ledger write that could not be completed.
func TrackRecorderFailure() {
	recorderFailures.Inc()
}

// TrackRefundClamp counts a refund that would have pushed availableSeats
// past the theater capacity.
func TrackRefundClamp() {
	refundClamps.Inc()
}
