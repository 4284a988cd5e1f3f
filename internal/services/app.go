package services

import (
	"github.com/farellandr/seatsavvy/internal/notify"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/store"
)

// App groups the services that share one store and one cancellation guard.
type App struct {
	Cancellations *Cancellations

	Accounts     *AccountService
	Catalog      *CatalogService
	Cancellation *CancellationService
	Issuance     *IssuanceService
	Verification *VerificationService
	Tickets      *TicketService
	Dashboard    *DashboardService
	Concierge    *ConciergeService
}

func NewApp(s *store.Store, publisher notify.Publisher, renderer qr.Renderer, answerer Answerer, opts ...Option) *App {
	cancellations := NewCancellations()
	return &App{
		Cancellations: cancellations,
		Accounts:      NewAccountService(s, opts...),
		Catalog:       NewCatalogService(s, cancellations, opts...),
		Cancellation:  NewCancellationService(s, cancellations, publisher, opts...),
		Issuance:      NewIssuanceService(s, cancellations, renderer, opts...),
		Verification:  NewVerificationService(s, opts...),
		Tickets:       NewTicketService(s),
		Dashboard:     NewDashboardService(s, cancellations),
		Concierge:     NewConciergeService(s, answerer),
	}
}
