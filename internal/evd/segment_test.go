package evd

import (
	"strings"
	"testing"
)

func TestSegments_BoundariesAreExact(t *testing.T) {
	first := "17 POSITIONSDATEN e-VD/v-e-VD\n17a Positionsnummer\n1\n"
	second := "17 POSITIONSDATEN e-VD/v-e-VD\n17a Positionsnummer\n2"

	segs := Segments(first + second)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0] != first {
		t.Errorf("segment 0: expected %q, got %q", first, segs[0])
	}
	if segs[1] != second {
		t.Errorf("segment 1: expected %q, got %q", second, segs[1])
	}
}

func TestSegments_OnePerHeaderOccurrence(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString("17 POSITIONSDATEN e-VD/v-e-VD\n17a Positionsnummer\n")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString("\n")
	}
	segs := Segments(b.String())
	if len(segs) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(segs))
	}
	for i, s := range segs {
		if strings.Count(s, "POSITIONSDATEN") != 1 {
			t.Errorf("segment %d: expected exactly one header, got %d", i, strings.Count(s, "POSITIONSDATEN"))
		}
	}
}

func TestSegments_NoHeaderYieldsNone(t *testing.T) {
	segs := Segments("some unrelated text\nwith a few lines\n")
	if len(segs) != 0 {
		t.Errorf("expected 0 segments, got %d", len(segs))
	}
}

func TestSegments_EmptyInput(t *testing.T) {
	if segs := Segments(""); len(segs) != 0 {
		t.Errorf("expected 0 segments for empty input, got %d", len(segs))
	}
}

func TestSegments_QuotedIndentedHeader(t *testing.T) {
	raw := `  "17 POSITIONSDATEN e-VD/v-e-VD` + "\n17a Positionsnummer\n1\n"
	segs := Segments(raw)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
}

func TestSegments_CaseInsensitiveHeader(t *testing.T) {
	raw := "17 Positionsdaten e-VD/v-e-VD\n17a Positionsnummer\n1\n"
	segs := Segments(raw)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
}

func TestSegments_HeaderMidLineIgnored(t *testing.T) {
	// The header only delimits at line starts.
	raw := "siehe 17 POSITIONSDATEN unten\n"
	if segs := Segments(raw); len(segs) != 0 {
		t.Errorf("expected 0 segments, got %d", len(segs))
	}
}
