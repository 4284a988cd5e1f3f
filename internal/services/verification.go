package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/policy"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/store"
)

type VerificationStatus string

const (
	StatusValid   VerificationStatus = "valid"
	StatusInvalid VerificationStatus = "invalid"
)

const (
	ReasonTicketNotFound  = "ticket not found"
	ReasonEventGone       = "event no longer exists"
	ReasonNotOrganizer    = "ticket is for an event you do not organize"
	ReasonBadSignature    = "qr payload signature does not match"
	ReasonPayloadMismatch = "qr payload does not match the issued ticket"
)

// VerificationResult is what the gate sees after a scan. Ticket is only set
// when the result is valid.
type VerificationResult struct {
	Status     VerificationStatus `json:"status"`
	Reason     string             `json:"reason,omitempty"`
	Ticket     *models.Ticket     `json:"ticket,omitempty"`
	RedeemedAt *time.Time         `json:"redeemed_at,omitempty"`
}

func (r VerificationResult) Valid() bool { return r.Status == StatusValid }

func invalid(reason string) VerificationResult {
	return VerificationResult{Status: StatusInvalid, Reason: reason}
}

type VerificationService struct {
	store *store.Store
	opts  options
}

func NewVerificationService(s *store.Store, opts ...Option) *VerificationService {
	return &VerificationService{store: s, opts: newOptions(opts)}
}

// Verify reports whether the ticket admits its holder. It reads only, so
// repeated calls agree until the catalog changes. Managers get an invalid
// result for tickets of events they do not organize, whether or not the event
// still exists.
func (v *VerificationService) Verify(ctx context.Context, actor models.UserProfile, ticketID string) (VerificationResult, error) {
	if err := authorize(actor, policy.Scanner(), policy.ActionVerify); err != nil {
		return VerificationResult{}, err
	}
	ticket, err := v.store.GetTicket(ctx, ticketID)
	if errors.Is(err, models.ErrNotFound) {
		return invalid(ReasonTicketNotFound), nil
	}
	if err != nil {
		return VerificationResult{}, fmt.Errorf("load ticket: %w", err)
	}
	if !policy.CanAccess(actor, policy.Ticket(ticket.OrganizerID, ticket.BuyerID), policy.ActionVerify) {
		return invalid(ReasonNotOrganizer), nil
	}
	_, err = v.store.GetEvent(ctx, ticket.EventID)
	if errors.Is(err, models.ErrNotFound) {
		return invalid(ReasonEventGone), nil
	}
	if err != nil {
		return VerificationResult{}, fmt.Errorf("load event: %w", err)
	}
	return VerificationResult{Status: StatusValid, Ticket: ticket, RedeemedAt: ticket.RedeemedAt}, nil
}

// VerifyPayload checks a scanned QR payload. The signature must hold and the
// payload must describe the stored ticket exactly.
func (v *VerificationService) VerifyPayload(ctx context.Context, actor models.UserProfile, raw string) (VerificationResult, error) {
	if err := authorize(actor, policy.Scanner(), policy.ActionVerify); err != nil {
		return VerificationResult{}, err
	}
	payload, err := qr.Decode(raw)
	if err != nil {
		return VerificationResult{}, err
	}
	if !qr.CheckSignature(payload, v.opts.qrSecret) {
		return invalid(ReasonBadSignature), nil
	}
	result, err := v.Verify(ctx, actor, payload.ID)
	if err != nil || !result.Valid() {
		return result, err
	}
	stored := result.Ticket.Payload()
	payload.Signature = ""
	if stored != payload {
		return invalid(ReasonPayloadMismatch), nil
	}
	return result, nil
}

// Redeem records the holder's first entry. A second redemption of the same
// ticket fails with ErrTicketAlreadyRedeemed.
func (v *VerificationService) Redeem(ctx context.Context, actor models.UserProfile, ticketID string) (*models.Ticket, error) {
	if err := authorize(actor, policy.Scanner(), policy.ActionRedeem); err != nil {
		return nil, err
	}
	ticket, err := v.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.Ticket(ticket.OrganizerID, ticket.BuyerID), policy.ActionRedeem); err != nil {
		return nil, err
	}
	if _, err := v.store.GetEvent(ctx, ticket.EventID); err != nil {
		return nil, err
	}
	now := v.opts.clock.Now()
	if err := v.store.MarkRedeemed(ctx, ticket.ID, now); err != nil {
		return nil, err
	}
	ticket.RedeemedAt = &now
	v.opts.logger.Info("ticket redeemed", "ticket_id", ticket.ID, "event_id", ticket.EventID, "by", actor.ID)
	return ticket, nil
}
