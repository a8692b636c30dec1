package scrape

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var repeatedSpace = regexp.MustCompile(`\s+`)

// unit is one (conference, year) work item.
type unit struct {
	conf Conference
	year int
}

// Runner fans the scraper out across every requested conference edition and
// assembles the final ordered dataset. One failed unit fails the run: the
// dataset is only useful complete, and per-fetch retries have already
// happened below this level.
type Runner struct {
	scraper *Scraper
	logger  *zap.Logger
	runID   uuid.UUID
}

// NewRunner wires a scraper and assigns the run id used in logs and the
// status endpoint.
func NewRunner(scraper *Scraper, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		scraper: scraper,
		logger:  logger,
		runID:   uuid.New(),
	}
}

// RunID identifies this run.
func (r *Runner) RunID() uuid.UUID {
	return r.runID
}

// Run scrapes every conference edition in [startYear, endYear], skipping
// years before a conference's first edition, and returns the rows sorted by
// year then conference with author order preserved within each paper.
func (r *Runner) Run(ctx context.Context, confs []Conference, startYear, endYear int) ([]Row, error) {
	var units []unit
	for _, conf := range confs {
		for year := startYear; year <= endYear; year++ {
			if year < conf.FirstYear {
				continue
			}
			units = append(units, unit{conf: conf, year: year})
		}
	}
	r.logger.Info("starting scrape run",
		zap.String("run_id", r.runID.String()),
		zap.Int("units", len(units)),
		zap.Int("start_year", startYear),
		zap.Int("end_year", endYear),
	)

	// Slots indexed by unit so the merge order does not depend on which
	// unit finishes first.
	results := make([][]Row, len(units))
	g, ctx := errgroup.WithContext(ctx)
	for i, u := range units {
		g.Go(func() error {
			rows, err := r.scraper.ScrapeUnit(ctx, u.conf, u.year)
			if err != nil {
				r.logger.Error("unit failed",
					zap.String("conference", u.conf.Name),
					zap.Int("year", u.year),
					zap.Error(err),
				)
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []Row
	for _, unitRows := range results {
		rows = append(rows, unitRows...)
	}
	Finalize(rows)
	r.logger.Info("scrape run finished", zap.Int("rows", len(rows)))
	return rows, nil
}

// Finalize puts rows into output order and cleans author names in place.
// The sort is stable and keyed by year then conference, so each paper's
// author order survives; repeated whitespace inside author names collapses
// to single spaces.
func Finalize(rows []Row) {
	for i := range rows {
		rows[i].Author = normalizeSpace(rows[i].Author)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Conference < rows[j].Conference
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(repeatedSpace.ReplaceAllString(s, " "))
}
