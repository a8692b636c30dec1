package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/gate"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/metrics"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/progress"
)

// DefaultAttempts is the total number of tries per fetch, counting the
// first one.
const DefaultAttempts = 3

// Fetcher turns a URL into a parsed document, holding an admission permit
// for the duration of each network attempt and retrying connection-level
// failures. It records every fetch with the shared progress tracker.
type Fetcher struct {
	client   Client
	gate     *gate.Gate
	tracker  *progress.Tracker
	attempts int
	logger   *zap.Logger
}

// New wires the fetcher. attempts <= 0 falls back to DefaultAttempts.
func New(client Client, g *gate.Gate, tracker *progress.Tracker, attempts int, logger *zap.Logger) *Fetcher {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:   client,
		gate:     g,
		tracker:  tracker,
		attempts: attempts,
		logger:   logger,
	}
}

// Document fetches and parses one page. kind labels the fetch for metrics
// (listing, paper, author). The scheduled counter is bumped once per call,
// before the first attempt; the completed counter is bumped only on
// success, so a fetch that exhausts its budget leaves the two counters
// diverged by design.
func (f *Fetcher) Document(ctx context.Context, kind, url string) (*goquery.Document, error) {
	f.tracker.RecordScheduled()
	start := time.Now()

	var doc *goquery.Document
	err := Retry(f.attempts, f.retryable(kind, url), func() error {
		if err := f.gate.Acquire(ctx); err != nil {
			return err
		}
		defer f.gate.Release()

		page, err := f.client.Fetch(ctx, url)
		if err != nil {
			return err
		}
		d, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if err != nil {
			return fmt.Errorf("parse %s: %w", url, err)
		}
		doc = d
		return nil
	})
	if err != nil {
		metrics.ObserveFetch(kind, outcome(err), time.Since(start))
		if IsTransient(err) {
			return nil, &ExhaustedError{URL: url, Attempts: f.attempts, Err: err}
		}
		return nil, err
	}

	f.tracker.RecordCompleted()
	metrics.ObserveFetch(kind, "success", time.Since(start))
	return doc, nil
}

// retryable classifies errors for the retry combinator and logs each
// repeated attempt. It is only consulted while attempts remain.
func (f *Fetcher) retryable(kind, url string) func(error) bool {
	return func(err error) bool {
		if !IsTransient(err) {
			return false
		}
		metrics.ObserveRetry()
		f.logger.Warn("retrying fetch after connection error",
			zap.String("kind", kind),
			zap.String("url", url),
			zap.Error(err),
		)
		return true
	}
}

func outcome(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case IsTransient(err):
		return "exhausted"
	default:
		return "error"
	}
}
