// Package bus provides a synchronous in-process event bus for world
// lifecycle events. It follows the same single-threaded contract as the
// simulation itself: Publish runs every handler inline on the calling
// goroutine, and there is no locking.
package bus

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is a published occurrence. Data carries the publisher's payload.
type Event struct {
	Type   string
	Source string
	Time   time.Time
	Data   any
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(eventType, source string, data any) Event {
	return Event{Type: eventType, Source: source, Time: time.Now(), Data: data}
}

// Handler consumes an event. A returned error is aggregated into the
// Publish result; it does not stop delivery to other handlers.
type Handler func(Event) error

// Subscription identifies one registered handler and can cancel it.
type Subscription struct {
	id        string
	eventType string
	bus       *Bus
}

// ID returns the subscription's unique id.
func (s *Subscription) ID() string { return s.id }

// EventType returns the event type the subscription listens to.
func (s *Subscription) EventType() string { return s.eventType }

// Cancel removes the handler. Safe to call more than once.
func (s *Subscription) Cancel() {
	if m, ok := s.bus.handlers[s.eventType]; ok {
		delete(m, s.id)
	}
}

// Bus dispatches events to subscribed handlers by exact event type.
type Bus struct {
	// handlers: eventType -> subID -> handler
	handlers map[string]map[string]Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{handlers: make(map[string]map[string]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType string, h Handler) *Subscription {
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[string]Handler)
	}
	id := uuid.NewString()
	b.handlers[eventType][id] = h
	return &Subscription{id: id, eventType: eventType, bus: b}
}

// Publish delivers the event to every handler of its type, in unspecified
// order. Handler errors are joined and returned; delivery is never short-
// circuited.
func (b *Bus) Publish(event Event) error {
	var all error
	for _, h := range b.handlers[event.Type] {
		if err := h(event); err != nil {
			all = errors.Join(all, err)
		}
	}
	return all
}

// SubscriberCount returns the number of handlers for an event type.
func (b *Bus) SubscriberCount(eventType string) int {
	return len(b.handlers[eventType])
}
