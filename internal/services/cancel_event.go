package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/notify"
	"github.com/farellandr/seatsavvy/internal/policy"
	"github.com/farellandr/seatsavvy/internal/store"
)

type CancellationService struct {
	store         *store.Store
	cancellations *Cancellations
	publisher     notify.Publisher
	opts          options
}

func NewCancellationService(s *store.Store, cancellations *Cancellations, publisher notify.Publisher, opts ...Option) *CancellationService {
	if publisher == nil {
		publisher = notify.NoopPublisher{}
	}
	return &CancellationService{
		store:         s,
		cancellations: cancellations,
		publisher:     publisher,
		opts:          newOptions(opts),
	}
}

// CancelEvent confirms the cancellation of an event and returns the pending
// task. Holders are notified and refunded in the background; the event leaves
// the catalog once the task commits.
func (c *CancellationService) CancelEvent(ctx context.Context, actor models.UserProfile, eventID string) (*CancellationTask, error) {
	event, err := c.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, policy.Event(event.OrganizerID), policy.ActionCancel); err != nil {
		return nil, err
	}

	task := newCancellationTask(*event, actor, c.opts.clock.Now())
	var tickets []models.Ticket
	err = c.cancellations.begin(task, func() error {
		var err error
		tickets, err = c.store.ListTickets(ctx, store.TicketFilter{EventIDs: []string{eventID}})
		if err != nil {
			return fmt.Errorf("count affected tickets: %w", err)
		}
		task.AffectedTicketCount = len(tickets)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.opts.logger.Info("event cancellation pending",
		"event_id", eventID, "affected_tickets", task.AffectedTicketCount, "requested_by", actor.ID)

	go c.run(context.WithoutCancel(ctx), task, tickets)
	return task, nil
}

// Task reports the latest cancellation of an event to its requester and to
// actors allowed to cancel the event. It keeps working after the event is gone.
func (c *CancellationService) Task(_ context.Context, actor models.UserProfile, eventID string) (*CancellationTask, error) {
	task, ok := c.cancellations.Task(eventID)
	if !ok {
		return nil, &models.NotFoundError{Kind: "cancellation for event", ID: eventID}
	}
	if task.RequestedBy != actor.ID && !policy.CanAccess(actor, policy.Event(task.OrganizerID), policy.ActionCancel) {
		return nil, fmt.Errorf("%w: cancellation of %s", models.ErrForbidden, eventID)
	}
	return task, nil
}

func (c *CancellationService) run(ctx context.Context, task *CancellationTask, tickets []models.Ticket) {
	defer c.cancellations.release()

	if c.opts.cancellationDelay > 0 {
		time.Sleep(c.opts.cancellationDelay)
	}

	c.notifyHolders(ctx, task, tickets)

	var flagged int64
	err := c.store.WithTx(ctx, func(tx *store.Store) error {
		n, err := tx.MarkEventTicketsCancelled(ctx, task.EventID)
		if err != nil {
			return fmt.Errorf("flag tickets: %w", err)
		}
		flagged = n
		return tx.DeleteEvent(ctx, task.EventID)
	})
	now := c.opts.clock.Now()
	if err != nil {
		c.opts.logger.Error("event cancellation failed", "event_id", task.EventID, "error", err)
		task.finish(err, now)
		return
	}
	c.opts.logger.Info("event cancelled",
		"event_id", task.EventID, "affected_tickets", task.AffectedTicketCount, "flagged_tickets", flagged)
	task.finish(nil, now)
}

func (c *CancellationService) notifyHolders(ctx context.Context, task *CancellationTask, tickets []models.Ticket) {
	for _, ticket := range tickets {
		now := c.opts.clock.Now()
		notice := notify.HolderNotice{
			MessageID:   uuid.NewString(),
			EventID:     task.EventID,
			EventTitle:  task.EventTitle,
			TicketID:    ticket.ID,
			HolderName:  ticket.HolderName,
			HolderEmail: ticket.HolderEmail,
			SentAt:      now,
		}
		if err := c.publisher.Publish(ctx, notify.SubjectEventCancelled, notice); err != nil {
			c.opts.logger.Warn("holder notice not sent", "ticket_id", ticket.ID, "error", err)
		}
		refund := notify.Refund{
			MessageID:   uuid.NewString(),
			TicketID:    ticket.ID,
			EventID:     task.EventID,
			HolderEmail: ticket.HolderEmail,
			Amount:      ticket.PricePaid,
			IssuedAt:    now,
		}
		if err := c.publisher.Publish(ctx, notify.SubjectTicketRefund, refund); err != nil {
			c.opts.logger.Warn("refund not issued", "ticket_id", ticket.ID, "error", err)
		}
	}
}
