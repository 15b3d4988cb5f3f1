// Package export renders parsed position data for downstream consumers:
// CSV and JSON for transfer, aligned text for terminals.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/markokajkut/evdex/internal/evd"
)

// WriteCSV writes the table with a header row of column labels. comma
// selects the field delimiter; zero keeps the default.
func WriteCSV(w io.Writer, tab *evd.Table, comma rune) error {
	if len(tab.Columns) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}

	if err := cw.Write(tab.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(tab.Columns))
	for i := range tab.Rows {
		for j, col := range tab.Columns {
			row[j] = tab.Cell(i, col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
