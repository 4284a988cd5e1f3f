package notify

import (
	"context"
	"sync"
)

// NoopPublisher drops every message. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, msg any) error { return nil }

func (NoopPublisher) Close() error { return nil }

// Message is one publication captured by a Recorder.
type Message struct {
	Subject string
	Body    any
}

// Recorder keeps every published message in memory. Err, when set, is
// returned from Publish instead of recording.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (r *Recorder) Publish(ctx context.Context, subject string, msg any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, Message{Subject: subject, Body: msg})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Count returns how many messages were published to subject.
func (r *Recorder) Count(subject string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.Subject == subject {
			n++
		}
	}
	return n
}
