package fetch

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/gate"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/progress"
)

// flakyClient fails the first fails calls with failErr, then serves body.
type flakyClient struct {
	mu      sync.Mutex
	fails   int
	failErr error
	body    string
	calls   int
}

func (c *flakyClient) Fetch(_ context.Context, url string) (Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls <= c.fails {
		return Page{}, c.failErr
	}
	return Page{URL: url, StatusCode: 200, Body: []byte(c.body)}, nil
}

func newTestFetcher(client Client, attempts int) (*Fetcher, *progress.Tracker) {
	tracker := progress.NewTracker()
	return New(client, gate.New(4), tracker, attempts, nil), tracker
}

// TestFetcherRetriesConnectionErrors fails twice with a connection reset and
// succeeds on the third attempt without surfacing an error.
func TestFetcherRetriesConnectionErrors(t *testing.T) {
	t.Parallel()

	client := &flakyClient{fails: 2, failErr: syscall.ECONNRESET, body: "<html><p>hi</p></html>"}
	f, tracker := newTestFetcher(client, 3)

	doc, err := f.Document(context.Background(), "paper", "https://example.com/p")
	require.NoError(t, err)
	require.Equal(t, "hi", doc.Find("p").Text())
	require.Equal(t, 3, client.calls)

	snap := tracker.Snapshot()
	require.Equal(t, progress.Snapshot{Completed: 1, Total: 1}, snap)
}

// TestFetcherExhaustsRetryBudget surfaces ExhaustedError after the final
// connection failure and leaves the completed counter untouched.
func TestFetcherExhaustsRetryBudget(t *testing.T) {
	t.Parallel()

	client := &flakyClient{fails: 99, failErr: syscall.ECONNREFUSED}
	f, tracker := newTestFetcher(client, 3)

	_, err := f.Document(context.Background(), "paper", "https://example.com/p")
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 3, exhausted.Attempts)
	require.Equal(t, "https://example.com/p", exhausted.URL)
	require.Equal(t, 3, client.calls)

	snap := tracker.Snapshot()
	require.Equal(t, uint64(1), snap.Total)
	require.Zero(t, snap.Completed)
}

// TestFetcherDoesNotRetryStatusErrors surfaces a non-2xx immediately.
func TestFetcherDoesNotRetryStatusErrors(t *testing.T) {
	t.Parallel()

	client := &flakyClient{fails: 99, failErr: &StatusError{URL: "https://example.com/p", Code: 404}}
	f, tracker := newTestFetcher(client, 3)

	_, err := f.Document(context.Background(), "paper", "https://example.com/p")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 404, statusErr.Code)
	require.Equal(t, 1, client.calls)
	require.Zero(t, tracker.Snapshot().Completed)
}

// TestFetcherDoesNotRetryOtherErrors covers the malformed-response class.
func TestFetcherDoesNotRetryOtherErrors(t *testing.T) {
	t.Parallel()

	client := &flakyClient{fails: 99, failErr: errors.New("malformed response")}
	f, _ := newTestFetcher(client, 3)

	_, err := f.Document(context.Background(), "paper", "https://example.com/p")
	require.Error(t, err)
	var exhausted *ExhaustedError
	require.False(t, errors.As(err, &exhausted))
	require.Equal(t, 1, client.calls)
}

// TestFetcherReleasesPermitBetweenAttempts would deadlock on a 1-permit
// gate if a failed attempt leaked its permit.
func TestFetcherReleasesPermitBetweenAttempts(t *testing.T) {
	t.Parallel()

	client := &flakyClient{fails: 2, failErr: syscall.ECONNRESET, body: "<html></html>"}
	tracker := progress.NewTracker()
	f := New(client, gate.New(1), tracker, 3, nil)

	_, err := f.Document(context.Background(), "listing", "https://example.com/l")
	require.NoError(t, err)
}
