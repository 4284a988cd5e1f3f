package services

import (
	"context"
	"sync"
	"time"

	"github.com/farellandr/seatsavvy/internal/models"
)

type CancellationStatus string

const (
	CancellationPending   CancellationStatus = "pending"
	CancellationCommitted CancellationStatus = "committed"
	CancellationFailed    CancellationStatus = "failed"
)

// CancellationTask tracks one event cancellation from confirmation until the
// event is removed from the catalog.
type CancellationTask struct {
	EventID             string
	EventTitle          string
	OrganizerID         string
	AffectedTicketCount int
	RequestedBy         string
	RequestedAt         time.Time

	mu          sync.Mutex
	status      CancellationStatus
	err         error
	committedAt time.Time
	done        chan struct{}
}

func newCancellationTask(event models.Event, actor models.UserProfile, at time.Time) *CancellationTask {
	return &CancellationTask{
		EventID:     event.ID,
		EventTitle:  event.Title,
		OrganizerID: event.OrganizerID,
		RequestedBy: actor.ID,
		RequestedAt: at,
		status:      CancellationPending,
		done:        make(chan struct{}),
	}
}

func (t *CancellationTask) Status() CancellationStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *CancellationTask) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done is closed once the task has committed or failed.
func (t *CancellationTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends, and returns the task's
// error if it failed.
func (t *CancellationTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *CancellationTask) finish(err error, at time.Time) {
	t.mu.Lock()
	if err != nil {
		t.status = CancellationFailed
		t.err = err
	} else {
		t.status = CancellationCommitted
		t.committedAt = at
	}
	t.mu.Unlock()
	close(t.done)
}

// CancellationSnapshot is a point-in-time copy of a task for reporting.
type CancellationSnapshot struct {
	EventID             string             `json:"event_id"`
	EventTitle          string             `json:"event_title"`
	OrganizerID         string             `json:"organizer_id"`
	AffectedTicketCount int                `json:"affected_ticket_count"`
	Status              CancellationStatus `json:"status"`
	Error               string             `json:"error,omitempty"`
	RequestedBy         string             `json:"requested_by"`
	RequestedAt         time.Time          `json:"requested_at"`
	CommittedAt         *time.Time         `json:"committed_at,omitempty"`
}

func (t *CancellationTask) Snapshot() CancellationSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := CancellationSnapshot{
		EventID:             t.EventID,
		EventTitle:          t.EventTitle,
		OrganizerID:         t.OrganizerID,
		AffectedTicketCount: t.AffectedTicketCount,
		Status:              t.status,
		RequestedBy:         t.RequestedBy,
		RequestedAt:         t.RequestedAt,
	}
	if t.err != nil {
		snap.Error = t.err.Error()
	}
	if !t.committedAt.IsZero() {
		at := t.committedAt
		snap.CommittedAt = &at
	}
	return snap
}

// Cancellations is the per-event guard shared by the services. At most one
// cancellation may be pending for an event, and no ticket may be issued for an
// event once its cancellation has begun.
type Cancellations struct {
	mu    sync.RWMutex
	tasks map[string]*CancellationTask
	wg    sync.WaitGroup
}

func NewCancellations() *Cancellations {
	return &Cancellations{tasks: make(map[string]*CancellationTask)}
}

// begin registers task as the pending cancellation for its event. prepare
// runs first, under the write lock, so no ticket can be issued for the event
// between prepare and registration. The task is not registered if prepare
// fails.
func (c *Cancellations) begin(task *CancellationTask, prepare func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.tasks[task.EventID]; ok && existing.Status() == CancellationPending {
		return models.ErrCancellationPending
	}
	if err := prepare(); err != nil {
		return err
	}
	c.tasks[task.EventID] = task
	c.wg.Add(1)
	return nil
}

func (c *Cancellations) release() {
	c.wg.Done()
}

func (c *Cancellations) Pending(eventID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	task, ok := c.tasks[eventID]
	return ok && task.Status() == CancellationPending
}

// Task returns the most recent cancellation task for the event, pending or
// finished.
func (c *Cancellations) Task(eventID string) (*CancellationTask, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	task, ok := c.tasks[eventID]
	return task, ok
}

// whileOpen runs fn unless a cancellation is pending for the event. New
// cancellations wait for fn to return.
func (c *Cancellations) whileOpen(eventID string, fn func() error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if task, ok := c.tasks[eventID]; ok && task.Status() == CancellationPending {
		return models.ErrCancellationPending
	}
	return fn()
}

// Drain waits for every in-flight cancellation to finish or for ctx to end.
func (c *Cancellations) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
