package evd

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"  Mengeneinheit  "`, "Mengeneinheit"},
		{"  17e Bruttomasse ", "17e Bruttomasse"},
		{"\t17a Positionsnummer\t", "17a Positionsnummer"},
		{`""`, ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tc.in, got, tc.want)
		}
	}
}

func TestClassify_KeyLineWithLabel(t *testing.T) {
	l := Classify("17e Bruttomasse")
	if l.Kind != LineKey {
		t.Fatalf("expected key line, got kind %d", l.Kind)
	}
	if l.Code != "17e" {
		t.Errorf("expected code %q, got %q", "17e", l.Code)
	}
	if l.Label != "Bruttomasse" {
		t.Errorf("expected label %q, got %q", "Bruttomasse", l.Label)
	}
}

func TestClassify_KeyLineWithoutLabelFallsBackToCode(t *testing.T) {
	l := Classify("17q")
	if l.Kind != LineKey {
		t.Fatalf("expected key line, got kind %d", l.Kind)
	}
	if l.Label != "17q" {
		t.Errorf("expected label to default to code %q, got %q", "17q", l.Label)
	}
}

func TestClassify_DottedKeyLine(t *testing.T) {
	l := Classify("17.1a Art der Packstücke")
	if l.Kind != LineKey {
		t.Fatalf("expected key line, got kind %d", l.Kind)
	}
	if l.Code != "17.1a" {
		t.Errorf("expected code %q, got %q", "17.1a", l.Code)
	}
	if l.Label != "Art der Packstücke" {
		t.Errorf("expected label %q, got %q", "Art der Packstücke", l.Label)
	}
}

func TestClassify_SectionHeader(t *testing.T) {
	for _, in := range []string{
		"17 POSITIONSDATEN e-VD/v-e-VD",
		`"17 POSITIONSDATEN e-VD/v-e-VD`,
		"  17 Positionsdaten e-VD/v-e-VD",
	} {
		if l := Classify(in); l.Kind != LineSectionHeader {
			t.Errorf("Classify(%q): expected section header, got kind %d", in, l.Kind)
		}
	}
}

func TestClassify_SubSectionHeader(t *testing.T) {
	for _, in := range []string{
		"17.1 PACKSTÜCKE",
		"17.1 Packstücke",
		"17 PACKSTUCKE",
	} {
		if l := Classify(in); l.Kind != LineSubSectionHeader {
			t.Errorf("Classify(%q): expected sub-section header, got kind %d", in, l.Kind)
		}
	}
}

func TestClassify_BareDottedPrefixIsStructural(t *testing.T) {
	// A lone "17.1" has no letter suffix and no label; it marks the
	// packages block rather than carrying data.
	l := Classify("17.1")
	if l.Kind != LineSubSectionHeader {
		t.Errorf("expected sub-section header, got kind %d", l.Kind)
	}
}

func TestClassify_ValueLine(t *testing.T) {
	for _, in := range []string{
		"Bierdosen 0,5 l",
		"B000",
		"170", // digit after the prefix, not a key letter
		"4,5",
	} {
		if l := Classify(in); l.Kind != LineValue {
			t.Errorf("Classify(%q): expected value line, got kind %d", in, l.Kind)
		}
	}
}

func TestClassify_NormalizesBeforeClassifying(t *testing.T) {
	l := Classify(`"  Mengeneinheit  "`)
	if l.Text != "Mengeneinheit" {
		t.Errorf("expected normalized text %q, got %q", "Mengeneinheit", l.Text)
	}
	if l.Kind != LineValue {
		t.Errorf("expected value line, got kind %d", l.Kind)
	}
}
