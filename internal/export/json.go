package export

import (
	"encoding/json"

	"github.com/markokajkut/evdex/internal/evd"
)

// RecordsJSON marshals records under their document bucket names. Unless
// includeUnmapped is set, the diagnostic leftover values are stripped first.
func RecordsJSON(records []evd.Record, includeUnmapped bool) ([]byte, error) {
	if !includeUnmapped {
		records = StripUnmapped(records)
	}
	return json.MarshalIndent(records, "", "  ")
}

// TableJSON marshals the flat table as columns plus ordered rows.
func TableJSON(tab *evd.Table) ([]byte, error) {
	return json.MarshalIndent(tab, "", "  ")
}

// StripUnmapped returns copies of records without their diagnostic leftover
// values. The field maps are shared, not copied.
func StripUnmapped(records []evd.Record) []evd.Record {
	out := make([]evd.Record, len(records))
	for i, r := range records {
		r.Unmapped = nil
		out[i] = r
	}
	return out
}
