// Package click bridges asynchronously-delivered OS click callbacks back to
// waiting senders.
//
// The Coordinator keeps an in-memory registry of pending waits keyed by
// notification id. Display paths register before showing a notification;
// the platform click callback acts as a producer pushing a ClickEvent into
// the pending wait; the registered consumer blocks on Wait until the event
// arrives or the wait is cancelled. All state lives in the memory of the
// owning process — a crash loses pending waits with no recovery, by design.
package click

import (
	"context"
	"errors"
	"sync"

	"wakedev/internal/notification"
)

// ErrAlreadyRegistered is returned when a wait already exists for an id.
var ErrAlreadyRegistered = errors.New("wait already registered for notification id")

// ErrCancelled is returned from Wait when the pending wait was cancelled
// before a click event arrived.
var ErrCancelled = errors.New("click wait cancelled")

// Coordinator tracks pending click waits for a single process.
type Coordinator struct {
	mu      sync.Mutex
	pending map[string]chan notification.ClickEvent
}

// New creates an empty Coordinator.
func New() *Coordinator {
	return &Coordinator{pending: make(map[string]chan notification.ClickEvent)}
}

// Wait is a handle to one pending click wait.
type Wait struct {
	id string
	ch chan notification.ClickEvent
	c  *Coordinator
}

// ID returns the notification id the wait belongs to.
func (w *Wait) ID() string { return w.id }

// Register creates a pending wait for the given notification id. It must be
// called before the notification is displayed in any wait mode. Registering
// an id that already has a pending wait fails.
func (c *Coordinator) Register(id string) (*Wait, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.pending[id]; exists {
		return nil, ErrAlreadyRegistered
	}

	// Buffer of one lets the producer resolve without a rendezvous even if
	// the consumer has not reached Wait yet.
	ch := make(chan notification.ClickEvent, 1)
	c.pending[id] = ch
	return &Wait{id: id, ch: ch, c: c}, nil
}

// Resolve delivers a click event to the pending wait for its notification
// id. At most one event is accepted per id: the first call removes the
// pending wait, so duplicate signals return false and are ignored.
func (c *Coordinator) Resolve(ev notification.ClickEvent) bool {
	c.mu.Lock()
	ch, ok := c.pending[ev.ID]
	if ok {
		delete(c.pending, ev.ID)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	ch <- ev
	return true
}

// Cancel removes the pending wait without delivering an event. A wait that
// was already resolved is left untouched. Safe to call more than once.
func (c *Coordinator) Cancel(w *Wait) {
	c.mu.Lock()
	ch, ok := c.pending[w.id]
	if ok && ch == w.ch {
		delete(c.pending, w.id)
	} else {
		ok = false
	}
	c.mu.Unlock()

	if ok {
		close(ch)
	}
}

// Wait suspends the caller until a click event arrives, the wait is
// cancelled, or ctx is done. Context cancellation removes the pending wait
// before returning, so no orphaned waiters remain.
func (c *Coordinator) Wait(ctx context.Context, w *Wait) (notification.ClickEvent, error) {
	select {
	case ev, ok := <-w.ch:
		if !ok {
			return notification.ClickEvent{}, ErrCancelled
		}
		return ev, nil
	case <-ctx.Done():
		c.Cancel(w)
		// A resolve may have slipped in between ctx firing and Cancel.
		select {
		case ev, ok := <-w.ch:
			if ok {
				return ev, nil
			}
		default:
		}
		return notification.ClickEvent{}, ctx.Err()
	}
}

// Pending reports whether a wait is currently registered for id.
func (c *Coordinator) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}
