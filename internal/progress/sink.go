package progress

// Sink consumes progress snapshots. Implementations must tolerate repeated
// calls with identical snapshots and may be invoked from the reporter
// goroutine at any time during a run.
type Sink interface {
	Observe(snap Snapshot)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(snap Snapshot)

// Observe calls f(snap).
func (f SinkFunc) Observe(snap Snapshot) {
	f(snap)
}
