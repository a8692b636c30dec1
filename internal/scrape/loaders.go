package scrape

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Fetch kinds used for metrics labels.
const (
	kindListing = "listing"
	kindPaper   = "paper"
	kindAuthor  = "author"
)

// DocumentFetcher fetches and parses one page. Satisfied by fetch.Fetcher;
// kept narrow so tests can substitute a fake.
type DocumentFetcher interface {
	Document(ctx context.Context, kind, url string) (*goquery.Document, error)
}

// Loader shapes the three entity requests on top of the resilient fetcher.
// It adds no retry or caching of its own; those semantics live in the
// fetcher and the orchestrator respectively.
type Loader struct {
	fetcher DocumentFetcher
	parser  PageParser
}

// NewLoader wires a fetcher and a parser.
func NewLoader(fetcher DocumentFetcher, parser PageParser) *Loader {
	return &Loader{fetcher: fetcher, parser: parser}
}

// ListingIDs fetches a schedule page and returns the paper ids on it.
func (l *Loader) ListingIDs(ctx context.Context, url string) ([]string, error) {
	doc, err := l.fetcher.Document(ctx, kindListing, url)
	if err != nil {
		return nil, err
	}
	ids, err := l.parser.PaperIDs(doc)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", url, err)
	}
	return ids, nil
}

// Paper fetches and extracts one paper page.
func (l *Loader) Paper(ctx context.Context, url string) (Paper, error) {
	doc, err := l.fetcher.Document(ctx, kindPaper, url)
	if err != nil {
		return Paper{}, err
	}
	paper, err := l.parser.Paper(doc)
	if err != nil {
		return Paper{}, fmt.Errorf("paper %s: %w", url, err)
	}
	return paper, nil
}

// Author fetches and extracts one author page.
func (l *Loader) Author(ctx context.Context, url string) (Author, error) {
	doc, err := l.fetcher.Document(ctx, kindAuthor, url)
	if err != nil {
		return Author{}, err
	}
	author, err := l.parser.Author(doc)
	if err != nil {
		return Author{}, fmt.Errorf("author %s: %w", url, err)
	}
	return author, nil
}
