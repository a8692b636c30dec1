// Package progress tracks the scraper's fetch counters against a total that
// grows as the request graph is discovered, and fans periodic snapshots out
// to pluggable sinks such as structured logs or Prometheus gauges.
package progress

import "sync/atomic"

// Snapshot is a point-in-time reading of the counters. Completed never
// exceeds Total; Total only grows during a run.
type Snapshot struct {
	Completed uint64 `json:"completed"`
	Total     uint64 `json:"total"`
}

// Tracker counts scheduled and completed fetches. It is shared by every
// concurrent fetch in a run, so both counters are atomics. The zero value
// is ready to use.
type Tracker struct {
	completed atomic.Uint64
	total     atomic.Uint64
}

// NewTracker returns a Tracker with both counters at zero.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordScheduled grows the denominator. It must be called before the fetch
// runs so observers never see completed overtake total.
func (t *Tracker) RecordScheduled() {
	t.total.Add(1)
}

// RecordCompleted increments the numerator, exactly once per fetch that
// reaches a successful terminal state. Fetches that exhaust their retry
// budget stay scheduled-but-never-completed.
func (t *Tracker) RecordCompleted() {
	t.completed.Add(1)
}

// Snapshot reads both counters without blocking producers. Total is read
// first so a concurrent schedule+complete pair can never yield a snapshot
// with completed > total.
func (t *Tracker) Snapshot() Snapshot {
	total := t.total.Load()
	completed := t.completed.Load()
	if completed > total {
		completed = total
	}
	return Snapshot{Completed: completed, Total: total}
}
