// Package store holds the session's events, tickets and profiles. Every
// service receives the same *Store; there is no package-level state.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/farellandr/seatsavvy/internal/models"
)

type Store struct {
	db *gorm.DB
}

// New migrates the schema on db and returns a store over it.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.UserProfile{}, &models.Event{}, &models.Ticket{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &Store{db: db}, nil
}

// Reset empties every table. Called at startup so no state survives from an
// earlier session when the store sits on a shared database.
func (s *Store) Reset(ctx context.Context) error {
	return s.WithTx(ctx, func(tx *Store) error {
		for _, model := range []any{&models.Ticket{}, &models.Event{}, &models.UserProfile{}} {
			if err := tx.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("reset store: %w", err)
			}
		}
		return nil
	})
}

// WithTx runs fn against a transaction-bound store. Either every write made
// through tx lands or none does.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Store{db: db})
	})
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate(err, "event", id)
	}
	return &event, nil
}

// ListEvents returns events in insertion order. An empty organizerID lists the
// whole catalog.
func (s *Store) ListEvents(ctx context.Context, organizerID string) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if organizerID != "" {
		query = query.Where("organizer_id = ?", organizerID)
	}
	var events []models.Event
	if err := query.Order("seq ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent replaces the mutable fields of the stored event with the same id.
// The id, organizer and creation time are left as stored.
func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	result := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]any{
			"title":            event.Title,
			"category":         event.Category,
			"date":             event.Date,
			"price":            event.Price,
			"location":         event.Location,
			"image":            event.Image,
			"description":      event.Description,
			"long_description": event.LongDescription,
			"updated_at":       event.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Kind: "event", ID: event.ID}
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Kind: "event", ID: id}
	}
	return nil
}

func (s *Store) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return s.db.WithContext(ctx).Create(ticket).Error
}

func (s *Store) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, translate(err, "ticket", id)
	}
	return &ticket, nil
}

// TicketFilter narrows ListTickets. Zero values do not filter.
type TicketFilter struct {
	EventIDs    []string
	OrganizerID string
	BuyerID     string
	Status      models.TicketStatus
}

func (s *Store) ListTickets(ctx context.Context, filter TicketFilter) ([]models.Ticket, error) {
	query := s.db.WithContext(ctx).Model(&models.Ticket{})
	if filter.EventIDs != nil {
		if len(filter.EventIDs) == 0 {
			return []models.Ticket{}, nil
		}
		query = query.Where("event_id IN ?", filter.EventIDs)
	}
	if filter.OrganizerID != "" {
		query = query.Where("organizer_id = ?", filter.OrganizerID)
	}
	if filter.BuyerID != "" {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var tickets []models.Ticket
	if err := query.Order("seq ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Store) CountTickets(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).Count(&n).Error
	return n, err
}

func (s *Store) CountTicketsByEvent(ctx context.Context, eventID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).Where("event_id = ?", eventID).Count(&n).Error
	return n, err
}

// MarkEventTicketsCancelled flags every active ticket of the event and returns
// how many rows changed.
func (s *Store) MarkEventTicketsCancelled(ctx context.Context, eventID string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("event_id = ? AND status = ?", eventID, models.TicketStatusActive).
		Update("status", models.TicketStatusEventCancelled)
	return result.RowsAffected, result.Error
}

// MarkRedeemed records the first check-in of a ticket. It fails with
// ErrTicketAlreadyRedeemed when another check-in got there first.
func (s *Store) MarkRedeemed(ctx context.Context, id string, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("id = ? AND redeemed_at IS NULL", id).
		Update("redeemed_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetTicket(ctx, id); err != nil {
			return err
		}
		return models.ErrTicketAlreadyRedeemed
	}
	return nil
}

func (s *Store) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

func (s *Store) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, translate(err, "profile", id)
	}
	return &profile, nil
}

// FindProfileByRole returns the earliest profile holding role.
func (s *Store) FindProfileByRole(ctx context.Context, role models.Role) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("role = ?", role).Order("created_at ASC, id ASC").First(&profile).Error; err != nil {
		return nil, translate(err, "profile for role", string(role))
	}
	return &profile, nil
}

func translate(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotFoundError{Kind: kind, ID: id}
	}
	return err
}
