package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVReader handles CSV files produced by table-extraction tools. Each cell
// becomes its own line, preserving row order, so that keys and values end up
// in the reading order the position parser expects.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read csv: %w", err)
	}

	var b strings.Builder
	for _, row := range records {
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			b.WriteString(cell)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
