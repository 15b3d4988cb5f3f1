package evd

// Segments splits raw extracted text into one sub-blob per POSITIONSDATEN
// block. Segment i spans from the start of header occurrence i to the start
// of occurrence i+1; the final segment runs to end of input. Input without a
// single header yields an empty slice.
func Segments(raw string) []string {
	starts := sectionHeaderPattern.FindAllStringIndex(raw, -1)
	if len(starts) == 0 {
		return nil
	}
	segments := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(raw)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segments = append(segments, raw[loc[0]:end])
	}
	return segments
}
