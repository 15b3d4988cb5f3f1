package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/markokajkut/evdex/internal/evd"
)

// WriteText renders the table as aligned columns for terminal display.
func WriteText(w io.Writer, tab *evd.Table) error {
	if len(tab.Columns) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tab.Columns, "\t"))
	cells := make([]string, len(tab.Columns))
	for i := range tab.Rows {
		for j, col := range tab.Columns {
			cells[j] = tab.Cell(i, col)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
