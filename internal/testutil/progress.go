// Package testutil provides test utilities for progress reporting.
package testutil

import (
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// ProgressRecorder captures progress events for assertions. It is safe for
// concurrent use, matching how transfer workers invoke the progress callback.
type ProgressRecorder struct {
	mu     sync.Mutex
	events []mirrortypes.Progress
}

// Record appends an event. Pass this method as the engine's progress callback.
func (r *ProgressRecorder) Record(p mirrortypes.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
}

// Events returns a copy of all recorded events in arrival order.
func (r *ProgressRecorder) Events() []mirrortypes.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mirrortypes.Progress, len(r.events))
	copy(out, r.events)
	return out
}

// EventsForKey returns the recorded events for a single object key.
func (r *ProgressRecorder) EventsForKey(key string) []mirrortypes.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []mirrortypes.Progress
	for _, p := range r.events {
		if p.Key == key {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of recorded events.
func (r *ProgressRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset clears the recorded events.
func (r *ProgressRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
