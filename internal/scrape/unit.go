package scrape

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UnitLoader is the loader surface the orchestrator needs. Satisfied by
// *Loader.
type UnitLoader interface {
	ListingIDs(ctx context.Context, url string) ([]string, error)
	Paper(ctx context.Context, url string) (Paper, error)
	Author(ctx context.Context, url string) (Author, error)
}

// Scraper drives one (conference, year) unit end to end: listing, paper
// fan-out, deduplicated author fan-out, join. Any fetch failure aborts the
// whole unit; there is no partial-success mode.
type Scraper struct {
	loader UnitLoader
	logger *zap.Logger
}

// NewScraper wires a loader.
func NewScraper(loader UnitLoader, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{loader: loader, logger: logger}
}

// ScrapeUnit produces the joined rows for one conference edition. A year
// whose listing contains no papers yields zero rows and no error.
func (s *Scraper) ScrapeUnit(ctx context.Context, conf Conference, year int) ([]Row, error) {
	log := s.logger.With(zap.String("conference", conf.Name), zap.Int("year", year))

	ids, err := s.loader.ListingIDs(ctx, conf.ScheduleURL(year))
	if err != nil {
		return nil, err
	}
	log.Info("listing fetched", zap.Int("papers", len(ids)))
	if len(ids) == 0 {
		return nil, nil
	}

	papers, err := s.fetchPapers(ctx, conf, year, ids)
	if err != nil {
		return nil, err
	}

	authorIDs := distinctAuthorIDs(papers)
	authors, err := s.fetchAuthors(ctx, conf, year, authorIDs)
	if err != nil {
		return nil, err
	}
	log.Info("unit resolved", zap.Int("authors", len(authorIDs)))

	return joinRows(conf, year, papers, authors)
}

// fetchPapers fans out one fetch per paper id. Results land in slots
// indexed by the listing position so the paper order is independent of
// completion order.
func (s *Scraper) fetchPapers(ctx context.Context, conf Conference, year int, ids []string) ([]Paper, error) {
	papers := make([]Paper, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			paper, err := s.loader.Paper(ctx, conf.PaperURL(year, id))
			if err != nil {
				return err
			}
			papers[i] = paper
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return papers, nil
}

// fetchAuthors resolves every distinct author id exactly once, into slots
// indexed by the deduplicated order.
func (s *Scraper) fetchAuthors(ctx context.Context, conf Conference, year int, ids []string) (map[string]Author, error) {
	resolved := make([]Author, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			author, err := s.loader.Author(ctx, conf.AuthorURL(year, id))
			if err != nil {
				return err
			}
			resolved[i] = author
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	authors := make(map[string]Author, len(ids))
	for i, id := range ids {
		authors[id] = resolved[i]
	}
	return authors, nil
}

// distinctAuthorIDs collects the union of author ids across all papers in
// first-seen order. An author credited on five papers is fetched once.
func distinctAuthorIDs(papers []Paper) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, paper := range papers {
		for _, ref := range paper.Authors {
			if _, ok := seen[ref.ID]; ok {
				continue
			}
			seen[ref.ID] = struct{}{}
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// joinRows flattens papers against the resolved author map, preserving each
// paper's author order. A lookup miss means an id seen during paper parsing
// was never scheduled, which the fan-out construction rules out; it fails
// the unit loudly instead of dropping the author.
func joinRows(conf Conference, year int, papers []Paper, authors map[string]Author) ([]Row, error) {
	var rows []Row
	for _, paper := range papers {
		for _, ref := range paper.Authors {
			author, ok := authors[ref.ID]
			if !ok {
				return nil, &JoinError{Title: paper.Title, AuthorID: ref.ID}
			}
			rows = append(rows, Row{
				Conference:  conf.Name,
				Year:        year,
				Title:       paper.Title,
				Author:      ref.Name,
				Affiliation: author.Affiliation,
			})
		}
	}
	return rows, nil
}
