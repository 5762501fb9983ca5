package pact

import (
	"context"
	"fmt"
	"sync"
)

// Outcome reports which branch a Trigger call took.
type Outcome int

const (
	// OutcomeFallback means no delegate was assigned; the fallback action ran.
	OutcomeFallback Outcome = iota
	// OutcomeHandled means the delegate answered true.
	OutcomeHandled
	// OutcomeDeclined means the delegate answered false.
	OutcomeDeclined
	// OutcomeFailed means the dispatch returned an error instead of a verdict.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFallback:
		return "no handler"
	case OutcomeHandled:
		return "handled"
	case OutcomeDeclined:
		return "declined"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Dispatch invokes the designated contract operation on a delegate and
// reports whether the delegate handled the event.
type Dispatch[C any] func(ctx context.Context, delegate C) (bool, error)

// HostConfig configures a delegating host.
type HostConfig[C any] struct {
	// Name labels the host in observer events. Defaults to "host".
	Name string
	// Dispatch is the designated operation Trigger invokes on the current
	// delegate. Required.
	Dispatch Dispatch[C]
	// Fallback runs when Trigger finds the slot empty. Optional; an empty
	// slot is a defined branch, not an error.
	Fallback func(ctx context.Context) error
	// Observer receives acquire, clear, and trigger events. Optional.
	Observer Observer
}

// Host holds zero or one delegate typed as the contract C and stays
// agnostic to which concrete type fulfills it. The slot starts empty, is
// filled by Acquire, and empties again only through Clear. Safe for
// concurrent use; dispatch runs outside the slot lock.
type Host[C any] struct {
	name     string
	dispatch Dispatch[C]
	fallback func(ctx context.Context) error
	observer Observer

	mu       sync.RWMutex
	delegate C
	assigned bool
}

// NewHost builds a host around the designated dispatch operation.
func NewHost[C any](cfg HostConfig[C]) (*Host[C], error) {
	if cfg.Dispatch == nil {
		return nil, fmt.Errorf("pact: host requires a dispatch operation")
	}
	if cfg.Name == "" {
		cfg.Name = "host"
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &Host[C]{
		name:     cfg.Name,
		dispatch: cfg.Dispatch,
		fallback: cfg.Fallback,
		observer: observer,
	}, nil
}

// MustNewHost builds a host or panics on invalid configuration.
func MustNewHost[C any](cfg HostConfig[C]) *Host[C] {
	h, err := NewHost(cfg)
	if err != nil {
		panic(err)
	}
	return h
}

// Name returns the host's label.
func (h *Host[C]) Name() string {
	return h.name
}

// Acquire stores delegate in the slot, replacing any previous value. The
// static contract check is the compile-time type parameter; Acquire itself
// performs no further validation.
func (h *Host[C]) Acquire(delegate C) {
	h.mu.Lock()
	h.delegate = delegate
	h.assigned = true
	h.mu.Unlock()
	h.observer.Observe(Event{Host: h.name, Kind: EventAcquire, Delegate: fmt.Sprintf("%T", delegate)})
}

// Clear empties the slot and reports whether a delegate was present.
func (h *Host[C]) Clear() bool {
	h.mu.Lock()
	had := h.assigned
	var zero C
	h.delegate = zero
	h.assigned = false
	h.mu.Unlock()
	h.observer.Observe(Event{Host: h.name, Kind: EventClear})
	return had
}

// Assigned reports whether a delegate currently occupies the slot.
func (h *Host[C]) Assigned() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.assigned
}

// Trigger performs one synchronous dispatch to the current delegate and
// branches on its result. With an empty slot the fallback action runs and
// the outcome is OutcomeFallback; that branch is defined behavior, so any
// returned error comes from the fallback action itself. There is no
// queuing, retry, or timeout.
func (h *Host[C]) Trigger(ctx context.Context) (Outcome, error) {
	h.mu.RLock()
	delegate, assigned := h.delegate, h.assigned
	h.mu.RUnlock()

	if !assigned {
		var err error
		if h.fallback != nil {
			err = h.fallback(ctx)
		}
		h.observer.Observe(Event{Host: h.name, Kind: EventTrigger, Outcome: OutcomeFallback, Err: err})
		return OutcomeFallback, err
	}

	handled, err := h.dispatch(ctx, delegate)
	outcome := OutcomeDeclined
	switch {
	case err != nil:
		outcome = OutcomeFailed
	case handled:
		outcome = OutcomeHandled
	}
	h.observer.Observe(Event{
		Host:     h.name,
		Kind:     EventTrigger,
		Delegate: fmt.Sprintf("%T", delegate),
		Outcome:  outcome,
		Err:      err,
	})
	return outcome, err
}
