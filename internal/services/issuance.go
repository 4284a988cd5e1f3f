package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/farellandr/seatsavvy/internal/idgen"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/policy"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/store"
)

type IssuanceService struct {
	store         *store.Store
	cancellations *Cancellations
	renderer      qr.Renderer
	opts          options
}

// NewIssuanceService wires ticket issuance. renderer may be nil, in which case
// tickets are issued without an image.
func NewIssuanceService(s *store.Store, cancellations *Cancellations, renderer qr.Renderer, opts ...Option) *IssuanceService {
	return &IssuanceService{store: s, cancellations: cancellations, renderer: renderer, opts: newOptions(opts)}
}

// Purchase issues a new ticket for the event. Every call yields a distinct
// ticket, even for identical input. A failed QR render leaves the image empty
// but still issues the ticket.
func (s *IssuanceService) Purchase(ctx context.Context, actor models.UserProfile, eventID, holderName, holderEmail string) (*models.Ticket, error) {
	if err := models.ValidateHolder(holderName, holderEmail); err != nil {
		return nil, err
	}
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.Event(event.OrganizerID), policy.ActionPurchase); err != nil {
		return nil, err
	}
	if s.cancellations.Pending(eventID) {
		return nil, models.ErrCancellationPending
	}

	id, err := idgen.NewTicketID()
	if err != nil {
		return nil, fmt.Errorf("generate ticket id: %w", err)
	}
	ticket := &models.Ticket{
		ID:          id,
		EventID:     event.ID,
		OrganizerID: event.OrganizerID,
		EventTitle:  event.Title,
		EventDate:   event.Date,
		BuyerID:     actor.ID,
		HolderName:  strings.TrimSpace(holderName),
		HolderEmail: strings.TrimSpace(holderEmail),
		PricePaid:   event.Price,
		Status:      models.TicketStatusActive,
		PurchasedAt: s.opts.clock.Now(),
	}
	payload, err := qr.Encode(*ticket, s.opts.qrSecret)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	ticket.QRPayload = payload
	ticket.QRImageURL = s.render(ctx, ticket.ID, payload)

	err = s.cancellations.whileOpen(eventID, func() error {
		// The event may have been cancelled while the image was rendering.
		if _, err := s.store.GetEvent(ctx, eventID); err != nil {
			return err
		}
		return s.store.CreateTicket(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	s.opts.logger.Info("ticket issued", "ticket_id", ticket.ID, "event_id", ticket.EventID)
	return ticket, nil
}

func (s *IssuanceService) render(ctx context.Context, ticketID, payload string) string {
	if s.renderer == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.renderTimeout)
	defer cancel()

	image, err := s.renderer.Render(ctx, payload)
	if err != nil {
		err = &models.ExternalServiceError{Service: "qr renderer", Err: err}
		s.opts.logger.Warn("qr render failed, issuing ticket without image", "ticket_id", ticketID, "error", err)
		return ""
	}
	return image
}
