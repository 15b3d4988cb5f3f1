package evd

import (
	"encoding/json"
	"testing"
)

func TestFieldMap_InsertionOrderPreserved(t *testing.T) {
	m := NewFieldMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("c", "3")

	want := []string{"b", "a", "c"}
	labels := m.Labels()
	if len(labels) != len(want) {
		t.Fatalf("expected labels %v, got %v", want, labels)
	}
	for i, w := range want {
		if labels[i] != w {
			t.Errorf("label[%d]: expected %q, got %q", i, w, labels[i])
		}
	}
}

func TestFieldMap_OverwriteKeepsPosition(t *testing.T) {
	m := NewFieldMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("b", "9")

	if m.Len() != 2 {
		t.Fatalf("expected 2 labels, got %d", m.Len())
	}
	if labels := m.Labels(); labels[0] != "b" {
		t.Errorf("expected %q to keep first position, got %v", "b", labels)
	}
	if v, _ := m.Get("b"); v != "9" {
		t.Errorf("expected overwritten value %q, got %q", "9", v)
	}
}

func TestFieldMap_MarshalJSONKeepsOrder(t *testing.T) {
	m := NewFieldMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("c", "3")

	got, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"b":"2","a":"1","c":"3"}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFieldMap_MarshalJSONEmpty(t *testing.T) {
	got, err := json.Marshal(NewFieldMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("expected {}, got %s", got)
	}
}

func TestRecord_MarshalJSONMainOnly(t *testing.T) {
	rec := Record{Fields: fields("Positionsnummer", "1")}
	got, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"POSITIONSDATEN e-VD/v-e-VD":{"Positionsnummer":"1"}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRecord_MarshalJSONAllBuckets(t *testing.T) {
	rec := Record{
		Fields:   fields("Positionsnummer", "1"),
		Packages: fields("Art der Packstücke", "CS"),
		Unmapped: []string{"55"},
	}
	got, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"POSITIONSDATEN e-VD/v-e-VD":{"Positionsnummer":"1"},` +
		`"PACKSTÜCKE":{"Art der Packstücke":"CS"},` +
		`"_UNMAPPED_VALUES":["55"]}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRecord_MarshalJSONZeroValue(t *testing.T) {
	got, err := json.Marshal(Record{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"POSITIONSDATEN e-VD/v-e-VD":{}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
