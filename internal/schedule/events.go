package schedule

import (
	"sync"
	"time"
)

// EventKind identifies a scheduling outcome.
type EventKind string

const (
	// EventPlaced is emitted when a flexible unit gets a slot.
	EventPlaced EventKind = "placed"
	// EventFallback is emitted when a recurring unit found no slot and
	// was force-placed at the start of its anchor day.
	EventFallback EventKind = "fallback"
	// EventDropped is emitted when a non-recurring unit found no slot and
	// was omitted from this pass's output.
	EventDropped EventKind = "dropped"
	// EventChainSkipped is emitted when a chain's first step found no
	// slot and the whole chain was left out of the pass.
	EventChainSkipped EventKind = "chain_skipped"
)

// Event describes one scheduling outcome. Callers and tests observe the
// engine through events rather than log text.
type Event struct {
	Kind    EventKind
	UnitID  string
	Title   string
	ChainID string
	Date    time.Time
	Start   string
	Reason  string
}

// Sink receives scheduling events.
type Sink interface {
	Record(Event)
}

// NopSink discards all events.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(Event) {}

// Recorder is a Sink that keeps every event. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Sink.
func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ByKind returns the recorded events of one kind.
func (r *Recorder) ByKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
