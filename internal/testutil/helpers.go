package testutil

import (
	"sync"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/events"
)

// Recorder is an events.Publisher that keeps every published event
type Recorder struct {
	mu     sync.Mutex
	events []events.Event
}

// Publish implements events.Publisher
func (r *Recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in publish order
func (r *Recorder) Types() []string {
	var types []string
	for _, e := range r.Events() {
		types = append(types, e.Type())
	}
	return types
}

// Count returns how many events of the given type were recorded
func (r *Recorder) Count(eventType string) int {
	n := 0
	for _, e := range r.Events() {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}
