// Package gate implements admission control for in-flight network fetches.
//
// The scraper discovers its request graph while running: papers found on a
// listing page spawn per-paper fetches which spawn per-author fetches. The
// gate puts a hard cap on how many of those requests may be on the wire at
// once, regardless of how many goroutines are asking.
package gate

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/metrics"
)

// Gate bounds the number of simultaneously admitted fetches to a fixed
// capacity. It is safe for use by an unbounded number of goroutines.
type Gate struct {
	sem *semaphore.Weighted
}

// DefaultCapacity is the permit pool size used when none is configured.
const DefaultCapacity = 500

// New creates a Gate admitting at most capacity concurrent holders.
func New(capacity int) *Gate {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Gate{sem: semaphore.NewWeighted(int64(capacity))}
}

// Acquire blocks until a permit is available or ctx is done. Callers must
// pair every successful Acquire with exactly one Release.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire fetch permit: %w", err)
	}
	metrics.IncInflight()
	return nil
}

// Release returns a permit to the pool.
func (g *Gate) Release() {
	metrics.DecInflight()
	g.sem.Release(1)
}
