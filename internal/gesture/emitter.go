package gesture

import "sync"

// Event names published by the controller.
const (
	// EventUpdate carries a Frame for every processed video frame.
	EventUpdate = "update"
	// EventStatus carries a human-readable status string.
	EventStatus = "status"
	// EventError carries an error when detection fails.
	EventError = "error"
)

// Handler receives an event payload. Update events carry a Frame, status
// events a string, error events an error.
type Handler func(payload any)

// subscription pairs a handler with a removal flag so a handler can be
// unsubscribed while an emit is in flight.
type subscription struct {
	fn      Handler
	removed bool
}

// Emitter is a named-channel publish/subscribe dispatcher. Emission is
// synchronous and delivers to subscribers in registration order.
// Unsubscribing a handler during its own invocation is safe: emits iterate
// over a snapshot and skip subscriptions removed mid-delivery.
type Emitter struct {
	mu       sync.Mutex
	channels map[string][]*subscription
}

// NewEmitter creates an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		channels: make(map[string][]*subscription),
	}
}

// On registers a handler for the named event and returns a function that
// removes it.
func (e *Emitter) On(event string, fn Handler) (remove func()) {
	sub := &subscription{fn: fn}

	e.mu.Lock()
	e.channels[event] = append(e.channels[event], sub)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		sub.removed = true
		subs := e.channels[event]
		for i, s := range subs {
			if s == sub {
				e.channels[event] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers the payload to all handlers currently registered for the
// event. Handlers run on the caller's goroutine.
func (e *Emitter) Emit(event string, payload any) {
	e.mu.Lock()
	subs := make([]*subscription, len(e.channels[event]))
	copy(subs, e.channels[event])
	e.mu.Unlock()

	for _, sub := range subs {
		e.mu.Lock()
		removed := sub.removed
		e.mu.Unlock()
		if removed {
			continue
		}
		sub.fn(payload)
	}
}

// SubscriberCount returns the number of handlers registered for the event.
func (e *Emitter) SubscriberCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.channels[event])
}
