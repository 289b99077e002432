package core

import (
	"sync"
	"time"
)

var timeNow = time.Now

// Event kinds.
const (
	KindSettlement  = "settlement"
	KindResource    = "resource"
	KindWorker      = "worker"
	KindSite        = "site"
	KindTurn        = "turn"
	KindPersistence = "persistence"
)

// Event is a single state-change notification. Subject identifies the worker
// an event is about and is empty otherwise.
type Event struct {
	Time        time.Time `json:"time"`
	Turn        int       `json:"turn"`
	Kind        string    `json:"kind"`
	Subject     string    `json:"subject,omitempty"`
	Description string    `json:"description"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(kind, description string) Event {
	return Event{
		Time:        timeNow(),
		Kind:        kind,
		Description: description,
	}
}

// EventLog is an append-only log of events. It keeps every event for the life
// of the process unless Drain is called; there is no retention limit.
type EventLog struct {
	events []Event
	lock   sync.Mutex
}

// NewEventLog creates an empty EventLog.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Record appends an event to the log.
func (l *EventLog) Record(e Event) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.events = append(l.events, e)
}

// Events returns a copy of all recorded events in order.
func (l *EventLog) Events() []Event {
	l.lock.Lock()
	defer l.lock.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.events)
}

// Drain returns all recorded events and empties the log.
func (l *EventLog) Drain() []Event {
	l.lock.Lock()
	defer l.lock.Unlock()
	out := l.events
	l.events = nil
	return out
}

type discard struct{}

func (discard) Record(Event) {}

// Discard is a recorder that drops every event.
var Discard = discard{}
