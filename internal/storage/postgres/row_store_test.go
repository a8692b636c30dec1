package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/scrape"
)

func TestNewRowStoreWithPoolRejectsBadTable(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewRowStoreWithPool(mock, "papers; DROP TABLE papers")
	require.ErrorContains(t, err, "invalid table name")
}

func TestNewRowStoreWithPoolDefaultsTable(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewRowStoreWithPool(mock, "")
	require.NoError(t, err)
	require.Equal(t, "papers", store.table)
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewRowStoreWithPool(mock, "papers")
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS papers").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRowsBatches(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewRowStoreWithPool(mock, "papers")
	require.NoError(t, err)

	rows := []scrape.Row{
		{Conference: "ICML", Year: 2019, Title: "First", Author: "Ada", Affiliation: "MIT"},
		{Conference: "ICML", Year: 2019, Title: "Second", Author: "Bob", Affiliation: "CMU"},
	}

	batch := mock.ExpectBatch()
	for _, row := range rows {
		batch.ExpectExec("INSERT INTO papers").
			WithArgs(row.Conference, row.Year, row.Title, row.Author, row.Affiliation).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	require.NoError(t, store.InsertRows(context.Background(), rows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRowsEmptyIsNoop(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewRowStoreWithPool(mock, "papers")
	require.NoError(t, err)

	require.NoError(t, store.InsertRows(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
