// Package fetch issues the scraper's HTTP requests: a colly-backed client,
// a connection-error retry combinator, and the gated resilient fetcher that
// the entity loaders build on.
package fetch

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// Page is the raw result of one GET.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Client issues a single GET and returns the response body. Connection
// failures surface as transport errors; non-2xx responses surface as
// *StatusError so callers can tell the two classes apart.
type Client interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// ClientConfig controls the colly client.
type ClientConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxParallel int
}

// CollyClient implements Client with a shared colly collector that is
// cloned per request so hooks never leak between fetches.
type CollyClient struct {
	base *colly.Collector
}

// NewCollyClient builds a collector with a transport sized for the
// configured parallelism.
func NewCollyClient(cfg ClientConfig) *CollyClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 1
	}
	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          128,
		MaxIdleConnsPerHost:   64,
		MaxConnsPerHost:       cfg.MaxParallel,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)
	return &CollyClient{base: base}
}

// Fetch retrieves url via a fresh collector clone.
func (c *CollyClient) Fetch(ctx context.Context, url string) (Page, error) {
	collector := c.base.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{page: Page{
			URL:        url,
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}})
	})

	collector.OnError(func(r *colly.Response, err error) {
		// colly reports HTTP error statuses through the same hook as
		// transport failures; a populated status code means the server
		// actually answered.
		if r != nil && r.StatusCode != 0 {
			send(fetchResult{err: &StatusError{URL: url, Code: r.StatusCode}})
			return
		}
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(fetchResult{err: err})
	})

	// Visit reports an HTTP error status as a bare error in addition to
	// firing OnError, so the hooks' typed result takes precedence and the
	// Visit error is only a fallback.
	visitErr := collector.Visit(url)
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		return res.page, res.err
	default:
	}
	if visitErr != nil {
		return Page{}, visitErr
	}
	return Page{}, errors.New("colly fetch produced no result")
}

type fetchResult struct {
	page Page
	err  error
}
