package reader

import (
	"strings"
	"testing"
)

func TestMarkdownReader_PipeTableCellsBecomeLines(t *testing.T) {
	input := `| 17a Positionsnummer | 1 |
| --- | --- |
| 17b Verbrauchsteuer-Produktcode | B000 |
`
	p := &MarkdownReader{}
	text, err := p.Read(strings.NewReader(input), "decl.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "17a Positionsnummer\n1\n17b Verbrauchsteuer-Produktcode\nB000\n"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestMarkdownReader_ParagraphKeepsSourceLines(t *testing.T) {
	input := "17a Positionsnummer\n1\n"
	p := &MarkdownReader{}
	text, err := p.Read(strings.NewReader(input), "decl.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both source lines are one paragraph but must stay separate lines.
	if text != "17a Positionsnummer\n1\n" {
		t.Errorf("expected source lines preserved, got %q", text)
	}
}

func TestMarkdownReader_HeadingBecomesLine(t *testing.T) {
	input := "# 17 POSITIONSDATEN e-VD/v-e-VD\n\nsome text\n"
	p := &MarkdownReader{}
	text, err := p.Read(strings.NewReader(input), "decl.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "17 POSITIONSDATEN e-VD/v-e-VD\nsome text\n"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestMarkdownReader_EmptyInput(t *testing.T) {
	p := &MarkdownReader{}
	text, err := p.Read(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty output, got %q", text)
	}
}
