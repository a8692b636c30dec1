package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/scrape"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	rows := []scrape.Row{
		{Conference: "NeurIPS", Year: 2019, Title: "Attention, Please", Author: "Jane Doe", Affiliation: "MIT"},
		{Conference: "ICML", Year: 2020, Title: "Plain", Author: "John Smith", Affiliation: "CMU"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	want := "Conference,Year,Title,Author,Affiliation\n" +
		"NeurIPS,2019,\"Attention, Please\",Jane Doe,MIT\n" +
		"ICML,2020,Plain,John Smith,CMU\n"
	require.Equal(t, want, buf.String())
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	require.Equal(t, "Conference,Year,Title,Author,Affiliation\n", buf.String())
}

func TestWriteCSVFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/papers.csv"
	rows := []scrape.Row{{Conference: "ICLR", Year: 2021, Title: "T", Author: "A", Affiliation: "X"}}
	require.NoError(t, WriteCSVFile(path, rows))
	require.FileExists(t, path)
}
