package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/farellandr/seatsavvy/internal/clock"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/notify"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/services"
	"github.com/farellandr/seatsavvy/internal/store"
	"github.com/farellandr/seatsavvy/internal/testutil"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var testSecret = []byte("test-secret")

type harness struct {
	store         *store.Store
	cancellations *services.Cancellations
	publisher     notify.Publisher
	recorder      *notify.Recorder

	catalog  *services.CatalogService
	cancel   *services.CancellationService
	issuance *services.IssuanceService
	verify   *services.VerificationService
	tickets  *services.TicketService
	stats    *services.DashboardService
	accounts *services.AccountService
}

type harnessConfig struct {
	renderer  qr.Renderer
	publisher notify.Publisher
}

func newHarness(t *testing.T, cfgs ...func(*harnessConfig)) *harness {
	t.Helper()
	recorder := &notify.Recorder{}
	cfg := harnessConfig{renderer: qr.NewRemoteRenderer(""), publisher: recorder}
	for _, fn := range cfgs {
		fn(&cfg)
	}

	s := testutil.NewTestStore(t)
	for _, p := range []models.UserProfile{testutil.Admin, testutil.ManagerA, testutil.ManagerB, testutil.Customer} {
		p := p
		if err := s.CreateProfile(context.Background(), &p); err != nil {
			t.Fatalf("create profile: %v", err)
		}
	}

	opts := []services.Option{
		services.WithClock(clock.NewFixed(testNow)),
		services.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		services.WithCancellationDelay(0),
		services.WithRenderTimeout(time.Second),
		services.WithQRSecret(testSecret),
	}
	cancellations := services.NewCancellations()
	h := &harness{
		store:         s,
		cancellations: cancellations,
		publisher:     cfg.publisher,
		recorder:      recorder,
		catalog:       services.NewCatalogService(s, cancellations, opts...),
		cancel:        services.NewCancellationService(s, cancellations, cfg.publisher, opts...),
		issuance:      services.NewIssuanceService(s, cancellations, cfg.renderer, opts...),
		verify:        services.NewVerificationService(s, opts...),
		tickets:       services.NewTicketService(s),
		stats:         services.NewDashboardService(s, cancellations),
		accounts:      services.NewAccountService(s, opts...),
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cancellations.Drain(ctx)
	})
	return h
}

func withRenderer(r qr.Renderer) func(*harnessConfig) {
	return func(c *harnessConfig) { c.renderer = r }
}

func withPublisher(p notify.Publisher) func(*harnessConfig) {
	return func(c *harnessConfig) { c.publisher = p }
}

func draft(title string, price float64) models.EventDraft {
	return models.EventDraft{
		Title:           title,
		Category:        models.CategoryConcert,
		Date:            "20.06.2026",
		Price:           &price,
		Location:        "The Blue Note, Chicago",
		Image:           "https://picsum.photos/600/600",
		Description:     "Live jazz all night.",
		LongDescription: "Doors open at 7pm.",
	}
}

func (h *harness) createEvent(t *testing.T, actor models.UserProfile, title string, price float64) *models.Event {
	t.Helper()
	event, err := h.catalog.CreateEvent(context.Background(), actor, draft(title, price))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func (h *harness) purchase(t *testing.T, actor models.UserProfile, eventID string) *models.Ticket {
	t.Helper()
	ticket, err := h.issuance.Purchase(context.Background(), actor, eventID, "Ada Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	return ticket
}

func (h *harness) countTickets(t *testing.T) int64 {
	t.Helper()
	n, err := h.store.CountTickets(context.Background())
	if err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	return n
}

func eventIDs(events []models.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// failingRenderer stands in for an unreachable QR image service.
type failingRenderer struct{}

func (failingRenderer) Render(context.Context, string) (string, error) {
	return "", errors.New("qr service unreachable")
}

// slowRenderer never answers before the context ends.
type slowRenderer struct{}

func (slowRenderer) Render(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// gatedPublisher holds every publication until release is closed, keeping a
// cancellation pending.
type gatedPublisher struct {
	release chan struct{}
	notify.Recorder
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{release: make(chan struct{})}
}

func (g *gatedPublisher) Publish(ctx context.Context, subject string, msg any) error {
	<-g.release
	return g.Recorder.Publish(ctx, subject, msg)
}
