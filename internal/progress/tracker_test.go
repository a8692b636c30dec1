package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTrackerConcurrentIncrements drives both counters from many goroutines
// and checks no update is lost.
func TestTrackerConcurrentIncrements(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	const workers = 50
	const perWorker = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tracker.RecordScheduled()
				tracker.RecordCompleted()
			}
		}()
	}
	wg.Wait()

	snap := tracker.Snapshot()
	require.Equal(t, uint64(workers*perWorker), snap.Total)
	require.Equal(t, snap.Total, snap.Completed)
}

// TestTrackerSnapshotInvariant samples while producers run and asserts
// completed never exceeds total and total never shrinks.
func TestTrackerSnapshotInvariant(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			tracker.RecordScheduled()
			tracker.RecordCompleted()
		}
	}()

	var lastTotal uint64
	for {
		snap := tracker.Snapshot()
		require.LessOrEqual(t, snap.Completed, snap.Total)
		require.GreaterOrEqual(t, snap.Total, lastTotal)
		lastTotal = snap.Total
		select {
		case <-done:
			final := tracker.Snapshot()
			require.Equal(t, uint64(5000), final.Total)
			require.Equal(t, final.Total, final.Completed)
			return
		default:
		}
	}
}

// TestTrackerFailedFetchDiverges mirrors the failure contract: a scheduled
// fetch that never completes leaves the counters apart.
func TestTrackerFailedFetchDiverges(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	tracker.RecordScheduled()
	tracker.RecordScheduled()
	tracker.RecordCompleted()

	snap := tracker.Snapshot()
	require.Equal(t, uint64(2), snap.Total)
	require.Equal(t, uint64(1), snap.Completed)
}
