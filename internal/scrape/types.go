// Package scrape drives the paper/author scrape: entity loaders over the
// resilient fetcher, the per-(conference, year) orchestrator, and the run
// coordinator that fans units out and assembles the final dataset.
package scrape

import "fmt"

// AuthorRef is one author credit as it appears on a paper page. ID is
// opaque and only unique within a single (conference, year); Name is the
// display form shown on the paper, which may differ in spacing from the
// author's own page.
type AuthorRef struct {
	ID   string
	Name string
}

// Paper is a single paper page: title plus author credits in source-page
// order. That order must survive into the final dataset.
type Paper struct {
	Title   string
	Authors []AuthorRef
}

// Author is a resolved author page.
type Author struct {
	Name        string
	Affiliation string
}

// Row is one fully joined output record; a paper with three authors
// produces three rows sharing a title.
type Row struct {
	Conference  string
	Year        int
	Title       string
	Author      string
	Affiliation string
}

// JoinError reports an author id that was referenced by a paper but never
// resolved. The orchestrator schedules every referenced id, so this should
// be impossible; it aborts the unit rather than silently dropping the
// author.
type JoinError struct {
	Title    string
	AuthorID string
}

// Error implements the error interface.
func (e *JoinError) Error() string {
	return fmt.Sprintf("paper %q references author %s which was never resolved", e.Title, e.AuthorID)
}
