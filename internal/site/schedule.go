// Package site parses the shared schedule-page layout used by the scraped
// conferences. All CSS-selector knowledge lives here; the rest of the
// system works with typed records.
package site

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/scrape"
)

const paperIDPrefix = "maincard_"

var speakerOnClick = regexp.MustCompile(`showSpeaker\('([^']+)'\)`)

// ParseError reports a page that does not match the expected layout. It is
// never retried; refetching cannot fix a structural mismatch.
type ParseError struct {
	Field string
	Msg   string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("schedule layout mismatch at %s: %s", e.Field, e.Msg)
}

// ScheduleParser implements scrape.PageParser for the schedule layout.
type ScheduleParser struct{}

// NewScheduleParser returns the parser; it is stateless.
func NewScheduleParser() *ScheduleParser {
	return &ScheduleParser{}
}

var _ scrape.PageParser = (*ScheduleParser)(nil)

// PaperIDs extracts the poster card ids from a listing page. Listing pages
// with no cards are valid and yield an empty slice.
func (p *ScheduleParser) PaperIDs(doc *goquery.Document) ([]string, error) {
	var parseErr error
	ids := []string{}
	doc.Find(".maincard.Poster").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		id, ok := card.Attr("id")
		if !ok || !strings.HasPrefix(id, paperIDPrefix) {
			parseErr = &ParseError{Field: ".maincard.Poster", Msg: fmt.Sprintf("card id %q lacks %q prefix", id, paperIDPrefix)}
			return false
		}
		ids = append(ids, strings.TrimPrefix(id, paperIDPrefix))
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return ids, nil
}

// Paper extracts the title and ordered author buttons from a paper page.
func (p *ScheduleParser) Paper(doc *goquery.Document) (scrape.Paper, error) {
	box, err := paperBox(doc)
	if err != nil {
		return scrape.Paper{}, err
	}
	titleSel := box.Find(".maincardBody").First()
	if titleSel.Length() == 0 {
		return scrape.Paper{}, &ParseError{Field: ".maincardBody", Msg: "no title element"}
	}
	paper := scrape.Paper{Title: strings.TrimSpace(titleSel.Text())}

	var parseErr error
	box.Find("button").EachWithBreak(func(_ int, btn *goquery.Selection) bool {
		onclick, ok := btn.Attr("onclick")
		if !ok {
			parseErr = &ParseError{Field: "button", Msg: "author button without onclick"}
			return false
		}
		match := speakerOnClick.FindStringSubmatch(onclick)
		if match == nil {
			parseErr = &ParseError{Field: "button", Msg: fmt.Sprintf("onclick %q does not reference a speaker", onclick)}
			return false
		}
		// Button text carries the display name with a trailing » marker.
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(btn.Text()), "»"))
		paper.Authors = append(paper.Authors, scrape.AuthorRef{ID: match[1], Name: name})
		return true
	})
	if parseErr != nil {
		return scrape.Paper{}, parseErr
	}
	return paper, nil
}

// Author extracts name and affiliation from an author page.
func (p *ScheduleParser) Author(doc *goquery.Document) (scrape.Author, error) {
	box, err := paperBox(doc)
	if err != nil {
		return scrape.Author{}, err
	}
	name := box.Find("h3").First()
	if name.Length() == 0 {
		return scrape.Author{}, &ParseError{Field: "h3", Msg: "no author name element"}
	}
	affiliation := box.Find("h4").First()
	if affiliation.Length() == 0 {
		return scrape.Author{}, &ParseError{Field: "h4", Msg: "no affiliation element"}
	}
	return scrape.Author{
		Name:        strings.TrimSpace(name.Text()),
		Affiliation: strings.TrimSpace(affiliation.Text()),
	}, nil
}

// paperBox locates the detail container: the parent of the first maincard.
func paperBox(doc *goquery.Document) (*goquery.Selection, error) {
	card := doc.Find(".maincard").First()
	if card.Length() == 0 {
		return nil, &ParseError{Field: ".maincard", Msg: "no detail card on page"}
	}
	return card.Parent(), nil
}
