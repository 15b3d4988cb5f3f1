// Package evd reassembles the POSITIONSDATEN blocks of a table-extracted
// e-VD/v-e-VD document into structured records. The upstream extraction
// flattens table cells into bare text lines with no guarantee that a field
// label is followed by its value, so the parser reconciles whole runs of key
// lines against whole runs of value lines instead of pairing line by line.
package evd

import (
	"errors"
	"strings"
)

// ErrNoStructure reports input in which no POSITIONSDATEN section header was
// found: the text is not a recognizable e-VD position listing and no partial
// result can be produced.
var ErrNoStructure = errors.New("no POSITIONSDATEN sections found")

// packagePrefix routes key codes to the PACKSTÜCKE bucket. The dotted
// sub-section codes (17.1a, 17.1b, …) all share it.
const packagePrefix = "17.1"

// Parse splits raw extracted text into POSITIONSDATEN segments and parses
// each into a Record, preserving document order. It fails only when the
// input has no recognizable structure at all; every in-segment irregularity
// degrades to empty values or Unmapped diagnostics instead.
func Parse(raw string) ([]Record, error) {
	segments := Segments(raw)
	if len(segments) == 0 {
		return nil, ErrNoStructure
	}
	records := make([]Record, len(segments))
	for i, seg := range segments {
		records[i] = ParseSegment(seg)
	}
	return records, nil
}

// ParseSegment reconstitutes one segment's scattered key and value lines
// into a Record. Keys and values arrive in runs of unequal length, so the
// parser collects a maximal run of keys, then a maximal run of values, and
// zips them in order: missing values pad to "", surplus values carry over to
// the next key run, and whatever is still unclaimed when the segment ends is
// kept as the Unmapped diagnostic. ParseSegment never fails.
func ParseSegment(segment string) Record {
	lines := segmentLines(segment)

	// The leading header line carries no field data.
	if len(lines) > 0 && lines[0].Kind == LineSectionHeader {
		lines = lines[1:]
	}

	rec := Record{Fields: NewFieldMap()}
	var pending []string

	for i := 0; i < len(lines); {
		// A PACKSTÜCKE marker only flips routing for the package key codes
		// that follow; it is never data itself.
		if lines[i].Kind == LineSubSectionHeader {
			i++
			continue
		}

		start := i
		for i < len(lines) && lines[i].Kind == LineKey {
			i++
		}
		keyGroup := lines[start:i]

		// No keys here: these values belong to a key run not yet seen.
		if len(keyGroup) == 0 {
			for i < len(lines) && lines[i].Kind == LineValue {
				pending = append(pending, lines[i].Text)
				i++
			}
			continue
		}

		values := pending
		for i < len(lines) && lines[i].Kind == LineValue {
			values = append(values, lines[i].Text)
			i++
		}

		for idx, key := range keyGroup {
			value := ""
			if idx < len(values) {
				value = values[idx]
			}
			if isPackageCode(key.Code) {
				if rec.Packages == nil {
					rec.Packages = NewFieldMap()
				}
				rec.Packages.Set(key.Label, value)
			} else {
				rec.Fields.Set(key.Label, value)
			}
		}

		// Values beyond this key run stay pending for the next one.
		if len(values) > len(keyGroup) {
			pending = values[len(keyGroup):]
		} else {
			pending = nil
		}
	}

	if len(pending) > 0 {
		rec.Unmapped = pending
	}
	return rec
}

// segmentLines normalizes a segment into classified non-empty lines.
func segmentLines(segment string) []Line {
	raw := strings.Split(strings.ReplaceAll(segment, "\r", "\n"), "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		line := Classify(l)
		if line.Text == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isPackageCode(code string) bool {
	return strings.HasPrefix(strings.ToLower(code), packagePrefix)
}
