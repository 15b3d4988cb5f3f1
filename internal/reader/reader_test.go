package reader

import "testing"

func TestForFile_KnownExtensions(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"decl.txt", "*reader.TextReader"},
		{"decl.csv", "*reader.CSVReader"},
		{"decl.pdf", "*reader.PDFReader"},
		{"decl.docx", "*reader.DOCXReader"},
		{"decl.html", "*reader.HTMLReader"},
		{"decl.htm", "*reader.HTMLReader"},
		{"decl.md", "*reader.MarkdownReader"},
		{"DECL.PDF", "*reader.PDFReader"},
	}
	for _, tc := range cases {
		r, err := ForFile(tc.filename)
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tc.filename, err)
			continue
		}
		var got string
		switch r.(type) {
		case *TextReader:
			got = "*reader.TextReader"
		case *CSVReader:
			got = "*reader.CSVReader"
		case *PDFReader:
			got = "*reader.PDFReader"
		case *DOCXReader:
			got = "*reader.DOCXReader"
		case *HTMLReader:
			got = "*reader.HTMLReader"
		case *MarkdownReader:
			got = "*reader.MarkdownReader"
		}
		if got != tc.want {
			t.Errorf("ForFile(%q): expected %s, got %s", tc.filename, tc.want, got)
		}
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("decl.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("a.pdf") {
		t.Error("expected .pdf to be supported")
	}
	if !IsSupportedExtension("a.CSV") {
		t.Error("expected extension check to be case-insensitive")
	}
	if IsSupportedExtension("a.xlsx") {
		t.Error("expected .xlsx to be unsupported")
	}
	if IsSupportedExtension("noext") {
		t.Error("expected file without extension to be unsupported")
	}
}
