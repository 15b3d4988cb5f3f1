package evd

import (
	"regexp"
	"strings"
)

// LineKind classifies one normalized line of extracted text.
type LineKind int

const (
	LineValue LineKind = iota
	LineSectionHeader
	LineSubSectionHeader
	LineKey
)

var (
	// keyPattern matches field-code lines like "17e Bruttomasse" or
	// "17.1a Art der Packstücke": a numeric code with optional sub-number,
	// exactly one letter, and an optional label after whitespace.
	keyPattern = regexp.MustCompile(`^(17(?:\.\d+)?[A-Za-z])(?:\s+(.*))?$`)

	// subHeaderPattern matches the PACKSTÜCKE block marker, e.g.
	// "17.1 PACKSTÜCKE" or "17 PACKSTUCKE". Unlike a key line, the numeric
	// prefix is followed by whitespace and the literal word, not a letter.
	subHeaderPattern = regexp.MustCompile(`(?i)^17(?:\.\d+)?\s+PACKST[ÜU]CKE\b`)

	// bareSubPrefixPattern matches a dotted sub-section prefix standing alone
	// ("17.1" with no letter and no label). Treated as a structural marker,
	// never as data.
	bareSubPrefixPattern = regexp.MustCompile(`^17\.\d+$`)

	// sectionHeaderPattern marks the start of one POSITIONSDATEN block.
	// Upstream extraction may leave whitespace and a stray quote in front.
	sectionHeaderPattern = regexp.MustCompile(`(?im)^\s*"?\s*17 POSITIONSDATEN\b`)
)

// Line is one classified line of a segment.
type Line struct {
	Kind  LineKind
	Text  string // normalized text
	Code  string // key lines only, e.g. "17e" or "17.1a"
	Label string // key lines only; falls back to Code when no label text follows
}

// Normalize strips surrounding whitespace and enclosing quote characters left
// behind by the upstream cell extraction.
func Normalize(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// Classify normalizes a raw line and assigns it one of the four line kinds.
// Header forms are checked first; the key pattern can never match them
// because their numeric prefix is followed by whitespace, not a letter.
func Classify(raw string) Line {
	text := Normalize(raw)
	switch {
	case sectionHeaderPattern.MatchString(text):
		return Line{Kind: LineSectionHeader, Text: text}
	case subHeaderPattern.MatchString(text), bareSubPrefixPattern.MatchString(text):
		return Line{Kind: LineSubSectionHeader, Text: text}
	}
	if m := keyPattern.FindStringSubmatch(text); m != nil {
		label := strings.TrimSpace(m[2])
		if label == "" {
			label = m[1]
		}
		return Line{Kind: LineKey, Text: text, Code: m[1], Label: label}
	}
	return Line{Kind: LineValue, Text: text}
}
