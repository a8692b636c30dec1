// Package postgres persists output rows into Postgres for runs that want
// the dataset queryable in addition to the CSV.
package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/scrape"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type pool interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// RowStore writes joined dataset rows into a single table.
type RowStore struct {
	pool  pool
	table string
}

// NewRowStore connects a pool from the DSN.
func NewRowStore(ctx context.Context, dsn, table string) (*RowStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewRowStoreWithPool(p, table)
}

// NewRowStoreWithPool constructs a store from an existing pool (primarily
// for testing).
func NewRowStoreWithPool(p pool, table string) (*RowStore, error) {
	if p == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "papers"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &RowStore{pool: p, table: table}, nil
}

// Close releases the underlying pool.
func (s *RowStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the rows table if it does not exist.
func (s *RowStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			conference  text NOT NULL,
			year        integer NOT NULL,
			title       text NOT NULL,
			author      text NOT NULL,
			affiliation text NOT NULL
		);`, s.table)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure %s schema: %w", s.table, err)
	}
	return nil
}

// InsertRows writes the rows in one batch, preserving their order.
func (s *RowStore) InsertRows(ctx context.Context, rows []scrape.Row) error {
	if len(rows) == 0 {
		return nil
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (conference, year, title, author, affiliation) VALUES ($1, $2, $3, $4, $5)",
		s.table,
	)
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query, row.Conference, row.Year, row.Title, row.Author, row.Affiliation)
	}
	results := s.pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()
	for i := range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}
