// Package services implements the ticketing operations on top of the store.
// Each service checks the actor with the policy package before it touches
// state, and every mutation is all-or-nothing.
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/farellandr/seatsavvy/internal/clock"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/policy"
)

const (
	DefaultCancellationDelay = 2 * time.Second
	DefaultRenderTimeout     = 10 * time.Second
)

type options struct {
	clock             clock.Clock
	logger            *slog.Logger
	cancellationDelay time.Duration
	renderTimeout     time.Duration
	qrSecret          []byte
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCancellationDelay sets how long a cancellation stays pending before it
// commits. Zero commits as soon as the notifications are out.
func WithCancellationDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.cancellationDelay = d
		}
	}
}

func WithRenderTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.renderTimeout = d
		}
	}
}

// WithQRSecret sets the key used to sign and check QR payloads.
func WithQRSecret(secret []byte) Option {
	return func(o *options) {
		o.qrSecret = secret
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:             clock.NewSystem(),
		logger:            slog.Default(),
		cancellationDelay: DefaultCancellationDelay,
		renderTimeout:     DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func authorize(actor models.UserProfile, resource policy.Resource, action policy.Action) error {
	if policy.CanAccess(actor, resource, action) {
		return nil
	}
	return fmt.Errorf("%w: %s may not %s this %s", models.ErrForbidden, actor.Role, action, resource.Kind)
}
