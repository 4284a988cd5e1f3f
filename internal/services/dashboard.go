package services

import (
	"context"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/policy"
	"github.com/farellandr/seatsavvy/internal/store"
)

type DashboardStats struct {
	Events           int     `json:"events"`
	TicketsSold      int     `json:"tickets_sold"`
	Revenue          float64 `json:"revenue"`
	CancelledTickets int     `json:"cancelled_tickets"`
	PendingCancels   int     `json:"pending_cancellations"`
}

type DashboardService struct {
	store         *store.Store
	cancellations *Cancellations
}

func NewDashboardService(s *store.Store, cancellations *Cancellations) *DashboardService {
	return &DashboardService{store: s, cancellations: cancellations}
}

// Stats summarises the catalog in the actor's scope. Revenue counts active
// tickets only; refunded ones are reported separately.
func (d *DashboardService) Stats(ctx context.Context, actor models.UserProfile) (DashboardStats, error) {
	if err := authorize(actor, policy.Catalog(), policy.ActionStats); err != nil {
		return DashboardStats{}, err
	}
	events, err := d.store.ListEvents(ctx, policy.EventScope(actor))
	if err != nil {
		return DashboardStats{}, err
	}
	filter, err := ticketFilter(actor)
	if err != nil {
		return DashboardStats{}, err
	}
	tickets, err := d.store.ListTickets(ctx, filter)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{Events: len(events)}
	for _, e := range events {
		if d.cancellations.Pending(e.ID) {
			stats.PendingCancels++
		}
	}
	for _, t := range tickets {
		if t.Status == models.TicketStatusEventCancelled {
			stats.CancelledTickets++
			continue
		}
		stats.TicketsSold++
		stats.Revenue += t.PricePaid
	}
	return stats, nil
}
