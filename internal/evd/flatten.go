package evd

// Table is the flat tabular view of a parse result: one row per record, one
// column per distinct field label seen across all records. Rows keep their
// record order, columns keep first-seen order.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    []*FieldMap `json:"rows"`
}

// Cell returns the value at row/col, or "" when the row never carried that
// column or the indices are out of range.
func (t *Table) Cell(row int, col string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	v, _ := t.Rows[row].Get(col)
	return v
}

// Flatten merges each record's main and package fields into a single row and
// derives the column set as the union of all labels, ordered by first
// appearance. A label used both as a main field and a package field keeps
// the package value; the Unmapped diagnostics never become columns.
func Flatten(records []Record) *Table {
	t := &Table{Rows: make([]*FieldMap, 0, len(records))}
	seen := make(map[string]bool)

	for _, rec := range records {
		row := NewFieldMap()
		merge := func(fm *FieldMap) {
			if fm == nil {
				return
			}
			for _, label := range fm.Labels() {
				v, _ := fm.Get(label)
				row.Set(label, v)
				if !seen[label] {
					seen[label] = true
					t.Columns = append(t.Columns, label)
				}
			}
		}
		merge(rec.Fields)
		merge(rec.Packages)
		t.Rows = append(t.Rows, row)
	}
	return t
}
