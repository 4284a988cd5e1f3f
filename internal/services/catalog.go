package services

import (
	"context"
	"fmt"

	"github.com/farellandr/seatsavvy/internal/idgen"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/policy"
	"github.com/farellandr/seatsavvy/internal/store"
)

type CatalogService struct {
	store         *store.Store
	cancellations *Cancellations
	opts          options
}

func NewCatalogService(s *store.Store, cancellations *Cancellations, opts ...Option) *CatalogService {
	return &CatalogService{store: s, cancellations: cancellations, opts: newOptions(opts)}
}

// ListEvents returns the catalog as actor sees it, in insertion order.
// Managers only see the events they organize.
func (c *CatalogService) ListEvents(ctx context.Context, actor models.UserProfile) ([]models.Event, error) {
	if err := authorize(actor, policy.Catalog(), policy.ActionList); err != nil {
		return nil, err
	}
	return c.store.ListEvents(ctx, policy.EventScope(actor))
}

func (c *CatalogService) GetEvent(ctx context.Context, actor models.UserProfile, id string) (*models.Event, error) {
	event, err := c.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.Event(event.OrganizerID), policy.ActionView); err != nil {
		return nil, err
	}
	return event, nil
}

// CreateEvent stores a new event. Only admins choose the organizer, and a
// missing one defaults to the admin. Everyone else always organizes the
// events they create.
func (c *CatalogService) CreateEvent(ctx context.Context, actor models.UserProfile, draft models.EventDraft) (*models.Event, error) {
	if err := authorize(actor, policy.Catalog(), policy.ActionCreate); err != nil {
		return nil, err
	}
	if draft.OrganizerID == "" || !actor.IsAdmin() {
		draft.OrganizerID = actor.ID
	}
	if err := authorize(actor, policy.Event(draft.OrganizerID), policy.ActionCreate); err != nil {
		return nil, err
	}
	if err := models.ValidateEventDraft(&draft); err != nil {
		return nil, err
	}

	id, err := idgen.NewEventID()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}
	now := c.opts.clock.Now()
	event := &models.Event{
		ID:          id,
		OrganizerID: draft.OrganizerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyDraft(event, draft)

	if err := c.store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	c.opts.logger.Info("event created", "event_id", event.ID, "organizer_id", event.OrganizerID)
	return event, nil
}

// UpdateEvent replaces the stored event's fields with draft. The id and the
// organizer never change.
func (c *CatalogService) UpdateEvent(ctx context.Context, actor models.UserProfile, id string, draft models.EventDraft) (*models.Event, error) {
	var updated *models.Event
	err := c.cancellations.whileOpen(id, func() error {
		event, err := c.store.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(actor, policy.Event(event.OrganizerID), policy.ActionUpdate); err != nil {
			return err
		}
		if draft.OrganizerID != "" && draft.OrganizerID != event.OrganizerID {
			if !actor.IsAdmin() {
				return authorize(actor, policy.Event(draft.OrganizerID), policy.ActionUpdate)
			}
			return &models.ValidationError{Field: "organizer_id", Message: "cannot be changed"}
		}
		if err := models.ValidateEventDraft(&draft); err != nil {
			return err
		}

		applyDraft(event, draft)
		event.UpdatedAt = c.opts.clock.Now()
		if err := c.store.UpdateEvent(ctx, event); err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyDraft(event *models.Event, draft models.EventDraft) {
	event.Title = draft.Title
	event.Category = draft.Category
	event.Date = draft.Date
	event.Price = *draft.Price
	event.Location = draft.Location
	event.Image = draft.Image
	event.Description = draft.Description
	event.LongDescription = draft.LongDescription
}
