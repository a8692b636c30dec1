// Package report serializes the joined dataset.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/scrape"
)

var header = []string{"Conference", "Year", "Title", "Author", "Affiliation"}

// WriteCSV serializes rows in their given order, header first. Ordering and
// name normalization are the run coordinator's job; this writer only
// encodes.
func WriteCSV(w io.Writer, rows []scrape.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Conference,
			strconv.Itoa(row.Year),
			row.Title,
			row.Author,
			row.Affiliation,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes rows to path, creating or truncating it.
func WriteCSVFile(path string, rows []scrape.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
