package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/testutil"
)

func TestPurchase_IssuesTicket(t *testing.T) {
	h := newHarness(t)
	event := h.createEvent(t, testutil.Admin, "Jazz Night", 20)

	ticket := h.purchase(t, testutil.Customer, event.ID)

	if !strings.HasPrefix(ticket.ID, "tkt-") {
		t.Fatalf("unexpected ticket id %q", ticket.ID)
	}
	if ticket.EventTitle != "Jazz Night" || ticket.EventDate != event.Date {
		t.Fatalf("expected denormalized event fields, got %+v", ticket)
	}
	if ticket.BuyerID != testutil.Customer.ID {
		t.Fatalf("expected buyer %q, got %q", testutil.Customer.ID, ticket.BuyerID)
	}
	if ticket.PricePaid != 20 || ticket.Status != models.TicketStatusActive {
		t.Fatalf("unexpected price or status: %+v", ticket)
	}
	if !ticket.PurchasedAt.Equal(testNow) {
		t.Fatalf("expected purchased_at %v, got %v", testNow, ticket.PurchasedAt)
	}

	payload, err := qr.Decode(ticket.QRPayload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.ID != ticket.ID || payload.EventID != event.ID || !payload.Verified {
		t.Fatalf("payload does not describe ticket: %+v", payload)
	}
	if !qr.CheckSignature(payload, testSecret) {
		t.Fatal("expected signed payload")
	}
	if !strings.Contains(ticket.QRImageURL, "api.qrserver.com") {
		t.Fatalf("expected rendered image url, got %q", ticket.QRImageURL)
	}
}

func TestPurchase_UniqueIDs(t *testing.T) {
	h := newHarness(t)
	event := h.createEvent(t, testutil.Admin, "Jazz Night", 20)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ticket := h.purchase(t, testutil.Customer, event.ID)
		if ticket.ID == "" {
			t.Fatal("empty ticket id")
		}
		if seen[ticket.ID] {
			t.Fatalf("duplicate ticket id %q", ticket.ID)
		}
		seen[ticket.ID] = true
	}
	if got := h.countTickets(t); got != 50 {
		t.Fatalf("expected 50 tickets, got %d", got)
	}
}

func TestPurchase_NotIdempotent(t *testing.T) {
	h := newHarness(t)
	event := h.createEvent(t, testutil.Admin, "Jazz Night", 20)

	first := h.purchase(t, testutil.Customer, event.ID)
	second := h.purchase(t, testutil.Customer, event.ID)
	if first.ID == second.ID {
		t.Fatal("identical purchases must yield distinct tickets")
	}
}

func TestPurchase_TicketKeepsEventSnapshot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	event := h.createEvent(t, testutil.ManagerA, "Jazz Night", 20)

	before := h.purchase(t, testutil.Customer, event.ID)

	d := draft("Jazz Night (moved)", 30)
	d.Date = "21.06.2026"
	if _, err := h.catalog.UpdateEvent(ctx, testutil.ManagerA, event.ID, d); err != nil {
		t.Fatalf("update: %v", err)
	}
	after := h.purchase(t, testutil.Customer, event.ID)

	stored, err := h.store.GetTicket(ctx, before.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if stored.EventTitle != "Jazz Night" || stored.EventDate != "20.06.2026" || stored.PricePaid != 20 {
		t.Fatalf("edit leaked into issued ticket: %+v", stored)
	}
	if stored.QRPayload != before.QRPayload {
		t.Fatal("issued payload changed after event edit")
	}
	if after.EventTitle != "Jazz Night (moved)" || after.EventDate != "21.06.2026" || after.PricePaid != 30 {
		t.Fatalf("new ticket should carry the edited event: %+v", after)
	}
}

func TestPurchase_Validation(t *testing.T) {
	h := newHarness(t)
	event := h.createEvent(t, testutil.Admin, "Jazz Night", 20)

	tests := []struct {
		name  string
		hName string
		email string
	}{
		{name: "empty email", hName: "Ada", email: ""},
		{name: "empty name", hName: " ", email: "ada@example.com"},
		{name: "malformed email", hName: "Ada", email: "ada-at-example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := h.countTickets(t)
			_, err := h.issuance.Purchase(context.Background(), testutil.Customer, event.ID, tt.hName, tt.email)
			if !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if after := h.countTickets(t); after != before {
				t.Fatalf("ticket count changed from %d to %d", before, after)
			}
		})
	}
}

func TestPurchase_UnknownEvent(t *testing.T) {
	h := newHarness(t)
	_, err := h.issuance.Purchase(context.Background(), testutil.Customer, "evt-missing", "Ada", "ada@example.com")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPurchase_RenderFailureIsSoft(t *testing.T) {
	for name, renderer := range map[string]qr.Renderer{
		"error":   failingRenderer{},
		"timeout": slowRenderer{},
		"none":    nil,
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, withRenderer(renderer))
			event := h.createEvent(t, testutil.Admin, "Jazz Night", 20)

			ticket := h.purchase(t, testutil.Customer, event.ID)
			if ticket.QRImageURL != "" {
				t.Fatalf("expected empty image, got %q", ticket.QRImageURL)
			}
			if ticket.QRPayload == "" {
				t.Fatal("payload must be issued without an image")
			}
			if got := h.countTickets(t); got != 1 {
				t.Fatalf("expected ticket stored, count %d", got)
			}
		})
	}
}

func TestPurchase_Guest(t *testing.T) {
	h := newHarness(t)
	event := h.createEvent(t, testutil.Admin, "Jazz Night", 20)

	ticket := h.purchase(t, models.Guest(), event.ID)
	if ticket.BuyerID != "" {
		t.Fatalf("guest purchase should have no buyer, got %q", ticket.BuyerID)
	}
}
