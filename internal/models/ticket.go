package models

import "time"

type TicketStatus string

const (
	TicketStatusActive         TicketStatus = "active"
	TicketStatusEventCancelled TicketStatus = "event_cancelled"
)

// Ticket is issued once and never edited; only Status and RedeemedAt move.
// EventTitle, EventDate and OrganizerID are copied from the event at purchase
// time so the ticket outlives a cancelled event.
type Ticket struct {
	ID          string       `gorm:"uniqueIndex;not null" json:"id"`
	Seq         int64        `gorm:"primaryKey;autoIncrement" json:"-"`
	EventID     string       `gorm:"not null;index" json:"event_id"`
	OrganizerID string       `gorm:"not null;index" json:"organizer_id"`
	EventTitle  string       `gorm:"not null" json:"event_title"`
	EventDate   string       `gorm:"not null" json:"event_date"`
	BuyerID     string       `gorm:"index" json:"buyer_id"`
	HolderName  string       `gorm:"not null" json:"holder_name"`
	HolderEmail string       `gorm:"not null" json:"holder_email"`
	PricePaid   float64      `gorm:"not null" json:"price_paid"`
	QRPayload   string       `gorm:"not null" json:"qr_payload"`
	QRImageURL  string       `json:"qr_image_url"`
	Status      TicketStatus `gorm:"not null;default:active" json:"status"`
	PurchasedAt time.Time    `gorm:"not null" json:"purchased_at"`
	RedeemedAt  *time.Time   `json:"redeemed_at,omitempty"`
}

// QRPayload is the authoritative content encoded into a ticket's QR code.
type QRPayload struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	EventTitle  string `json:"eventTitle"`
	EventDate   string `json:"eventDate"`
	HolderName  string `json:"holderName"`
	HolderEmail string `json:"holderEmail"`
	Verified    bool   `json:"verified"`
	Signature   string `json:"sig,omitempty"`
}

func (t Ticket) Payload() QRPayload {
	return QRPayload{
		ID:          t.ID,
		EventID:     t.EventID,
		EventTitle:  t.EventTitle,
		EventDate:   t.EventDate,
		HolderName:  t.HolderName,
		HolderEmail: t.HolderEmail,
		Verified:    true,
	}
}
