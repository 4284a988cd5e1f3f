package services

import (
	"context"
	"fmt"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/policy"
	"github.com/farellandr/seatsavvy/internal/store"
)

type TicketService struct {
	store *store.Store
}

func NewTicketService(s *store.Store) *TicketService {
	return &TicketService{store: s}
}

// ListTickets returns every ticket for admins, the tickets of their own
// events for managers and their own purchases for customers. Tickets of
// cancelled events stay in scope as refund records.
func (t *TicketService) ListTickets(ctx context.Context, actor models.UserProfile) ([]models.Ticket, error) {
	filter, err := ticketFilter(actor)
	if err != nil {
		return nil, err
	}
	return t.store.ListTickets(ctx, filter)
}

func (t *TicketService) GetTicket(ctx context.Context, actor models.UserProfile, id string) (*models.Ticket, error) {
	ticket, err := t.store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.Ticket(ticket.OrganizerID, ticket.BuyerID), policy.ActionView); err != nil {
		return nil, err
	}
	return ticket, nil
}

func ticketFilter(actor models.UserProfile) (store.TicketFilter, error) {
	organizerID, buyerID, ok := policy.TicketScope(actor)
	if !ok {
		return store.TicketFilter{}, fmt.Errorf("%w: %s may not list tickets", models.ErrForbidden, actor.Role)
	}
	return store.TicketFilter{OrganizerID: organizerID, BuyerID: buyerID}, nil
}
