package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/store"
)

// NewTestStore returns a store over a private in-memory sqlite database.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// Each connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s, err := store.New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

var (
	Admin    = models.UserProfile{ID: "admin1", Name: "System Admin", Email: "admin@seatsavvy.com", Role: models.RoleAdmin}
	ManagerA = models.UserProfile{ID: "manager1", Name: "John Manager", Email: "john@events.com", Role: models.RoleManager}
	ManagerB = models.UserProfile{ID: "manager2", Name: "Jane Manager", Email: "jane@events.com", Role: models.RoleManager}
	Customer = models.UserProfile{ID: "user1", Name: "Guest User", Email: "guest@gmail.com", Role: models.RoleCustomer}
)

// InsertEvent stores an event owned by organizerID with sensible defaults.
func InsertEvent(t *testing.T, s *store.Store, id, organizerID, title string, price float64) models.Event {
	t.Helper()
	event := models.Event{
		ID:              id,
		OrganizerID:     organizerID,
		Title:           title,
		Category:        models.CategoryConcert,
		Date:            "20.06.2026",
		Price:           price,
		Location:        "The Blue Note, Chicago",
		Image:           "https://picsum.photos/600/600",
		Description:     "An evening of music.",
		LongDescription: "Doors open at 7pm. 21+ only.",
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreateEvent(context.Background(), &event); err != nil {
		t.Fatalf("insert event: %v", err)
	}
	return event
}

// InsertTicket stores an active ticket for event bought by buyerID.
func InsertTicket(t *testing.T, s *store.Store, id string, event models.Event, buyerID string) models.Ticket {
	t.Helper()
	ticket := models.Ticket{
		ID:          id,
		EventID:     event.ID,
		OrganizerID: event.OrganizerID,
		EventTitle:  event.Title,
		EventDate:   event.Date,
		BuyerID:     buyerID,
		HolderName:  "Ada Lovelace",
		HolderEmail: "ada@example.com",
		PricePaid:   event.Price,
		QRPayload:   `{"id":"` + id + `"}`,
		Status:      models.TicketStatusActive,
		PurchasedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreateTicket(context.Background(), &ticket); err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	return ticket
}
