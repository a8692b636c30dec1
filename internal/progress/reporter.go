package progress

import (
	"context"
	"time"
)

const defaultInterval = 2 * time.Second

// Reporter samples a Tracker on a fixed interval and pushes the snapshot to
// every registered sink. Sampling keeps the fetch path free of sink work:
// producers only touch atomic counters.
type Reporter struct {
	tracker  *Tracker
	sinks    []Sink
	interval time.Duration
}

// NewReporter wires a tracker to its sinks. A non-positive interval falls
// back to the default.
func NewReporter(tracker *Tracker, interval time.Duration, sinks ...Sink) *Reporter {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Reporter{
		tracker:  tracker,
		sinks:    append([]Sink(nil), sinks...),
		interval: interval,
	}
}

// Run blocks, emitting snapshots until ctx is done, then emits one final
// snapshot so sinks see the end state of the run.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.emit()
		case <-ctx.Done():
			r.emit()
			return
		}
	}
}

func (r *Reporter) emit() {
	snap := r.tracker.Snapshot()
	for _, sink := range r.sinks {
		if sink == nil {
			continue
		}
		sink.Observe(snap)
	}
}
