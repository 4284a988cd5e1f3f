// Package notify tells ticket holders about cancelled events and issues the
// matching (simulated) refunds.
package notify

import (
	"context"
	"time"
)

const (
	SubjectEventCancelled = "seatsavvy.event.cancelled"
	SubjectTicketRefund   = "seatsavvy.ticket.refund"
)

// HolderNotice is sent to a ticket holder when the event is cancelled.
type HolderNotice struct {
	MessageID   string    `json:"message_id"`
	EventID     string    `json:"event_id"`
	EventTitle  string    `json:"event_title"`
	TicketID    string    `json:"ticket_id"`
	HolderName  string    `json:"holder_name"`
	HolderEmail string    `json:"holder_email"`
	SentAt      time.Time `json:"sent_at"`
}

// Refund is the simulated reversal of one ticket purchase.
type Refund struct {
	MessageID   string    `json:"message_id"`
	TicketID    string    `json:"ticket_id"`
	EventID     string    `json:"event_id"`
	HolderEmail string    `json:"holder_email"`
	Amount      float64   `json:"amount"`
	IssuedAt    time.Time `json:"issued_at"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, msg any) error
	Close() error
}
