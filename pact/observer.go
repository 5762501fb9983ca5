package pact

import "sync"

// EventKind identifies a host lifecycle event.
type EventKind int

const (
	// EventAcquire records a delegate being stored in the slot.
	EventAcquire EventKind = iota
	// EventClear records the slot being emptied.
	EventClear
	// EventTrigger records one Trigger call and the branch it took.
	EventTrigger
)

func (k EventKind) String() string {
	switch k {
	case EventAcquire:
		return "acquire"
	case EventClear:
		return "clear"
	case EventTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Event records one host action. Delegate carries the concrete delegate
// type when one is involved; Outcome is meaningful for EventTrigger.
type Event struct {
	Host     string
	Kind     EventKind
	Delegate string
	Outcome  Outcome
	Err      error
}

// Observer receives host events.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

// Observe calls f.
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Journal is an in-memory observer that keeps every event in order. Safe
// for concurrent use.
type Journal struct {
	mu     sync.Mutex
	events []Event
}

// Observe appends the event to the journal.
func (j *Journal) Observe(e Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

// Events returns a copy of the recorded events.
func (j *Journal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// Len reports how many events the journal holds.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.events)
}
