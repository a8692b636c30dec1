package scrape

import "github.com/PuerkitoBio/goquery"

// PageParser extracts typed records from fetched documents. The loaders are
// layout-agnostic; everything that knows about the schedule page's CSS
// classes lives behind this interface.
type PageParser interface {
	// PaperIDs returns the paper ids present on a listing page. An empty
	// slice is valid; a year can have no papers.
	PaperIDs(doc *goquery.Document) ([]string, error)
	// Paper extracts the title and ordered author credits from a paper page.
	Paper(doc *goquery.Document) (Paper, error)
	// Author extracts name and affiliation from an author page.
	Author(doc *goquery.Document) (Author, error)
}
