package lifecycle

import (
	"sync"

	"fixify/models"
)

// EventKind classifies a state delta observed between two dispatches.
type EventKind string

const (
	EventStatusChanged EventKind = "statusChanged"
	EventErrorRaised   EventKind = "errorRaised"
	EventWarningAdded  EventKind = "warningAdded"
)

// Event describes one observable delta produced by a dispatch.
type Event struct {
	Kind    EventKind
	From    models.BookingStatus
	To      models.BookingStatus
	Message string // error text or warning text, depending on Kind
}

// Subscriber receives events after each dispatch. Notification transports
// (toasts, push, email) implement this; the machine itself never performs
// side effects.
type Subscriber interface {
	OnBookingEvent(event Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(event Event)

func (f SubscriberFunc) OnBookingEvent(event Event) { f(event) }

// Machine owns one booking draft's state and serializes dispatches against
// it. The reducer stays pure; the machine adds the single-writer discipline
// and fans state deltas out to subscribers.
type Machine struct {
	mu    sync.Mutex
	state models.BookingState
	subs  []Subscriber
}

// NewMachine returns a machine at the initial IDLE state.
func NewMachine() *Machine {
	return &Machine{state: models.NewBookingState()}
}

// Subscribe registers a subscriber for future dispatches.
func (m *Machine) Subscribe(s Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, s)
}

// State returns the current snapshot.
func (m *Machine) State() models.BookingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Dispatch applies the action and returns the new snapshot. Subscribers are
// notified of the deltas between the previous and the new state, in order:
// status change, error, new warnings.
func (m *Machine) Dispatch(action Action) models.BookingState {
	m.mu.Lock()
	prev := m.state
	next := Reduce(prev, action)
	m.state = next
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, event := range Diff(prev, next) {
		for _, s := range subs {
			s.OnBookingEvent(event)
		}
	}
	return next
}

// Diff computes the observable deltas between two consecutive states.
func Diff(prev, next models.BookingState) []Event {
	var events []Event
	if next.Status != prev.Status {
		events = append(events, Event{Kind: EventStatusChanged, From: prev.Status, To: next.Status})
	}
	if next.Error != "" && next.Error != prev.Error {
		events = append(events, Event{Kind: EventErrorRaised, From: prev.Status, To: next.Status, Message: next.Error})
	}
	seen := make(map[string]bool, len(prev.Warnings))
	for _, w := range prev.Warnings {
		seen[w] = true
	}
	for _, w := range next.Warnings {
		if !seen[w] {
			events = append(events, Event{Kind: EventWarningAdded, From: prev.Status, To: next.Status, Message: w})
		}
	}
	return events
}
