package evd

import (
	"bytes"
	"encoding/json"
)

// Bucket names used in the JSON form of a Record. They mirror the section
// titles of the source document.
const (
	MainBucket     = "POSITIONSDATEN e-VD/v-e-VD"
	PackagesBucket = "PACKSTÜCKE"
	UnmappedBucket = "_UNMAPPED_VALUES"
)

// FieldMap is a label→value mapping that preserves first-seen insertion
// order. Setting an existing label overwrites its value in place.
type FieldMap struct {
	labels []string
	values map[string]string
}

func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]string)}
}

// Set stores value under label, keeping the label's original position when it
// is already present.
func (m *FieldMap) Set(label, value string) {
	if _, ok := m.values[label]; !ok {
		m.labels = append(m.labels, label)
	}
	m.values[label] = value
}

// Get returns the value for label and whether the label is present.
func (m *FieldMap) Get(label string) (string, bool) {
	v, ok := m.values[label]
	return v, ok
}

// Labels returns a copy of the labels in insertion order.
func (m *FieldMap) Labels() []string {
	if len(m.labels) == 0 {
		return nil
	}
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Len returns the number of labels.
func (m *FieldMap) Len() int {
	return len(m.labels)
}

// MarshalJSON renders the map as a JSON object with keys in insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range m.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.values[label])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Record is the structured output for one POSITIONSDATEN segment.
type Record struct {
	// Fields holds the position's main data in document order.
	Fields *FieldMap
	// Packages holds the nested PACKSTÜCKE data. It is nil when the segment
	// had no package keys, which is distinct from present-but-empty.
	Packages *FieldMap
	// Unmapped collects value lines left over after every key in the segment
	// was satisfied. It signals an extraction anomaly and is not business
	// data; nil when the segment parsed cleanly.
	Unmapped []string
}

// MarshalJSON renders the record under its document bucket names. Packages
// and Unmapped are omitted entirely when absent.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeBucket := func(name string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	fields := r.Fields
	if fields == nil {
		fields = NewFieldMap()
	}
	if err := writeBucket(MainBucket, fields); err != nil {
		return nil, err
	}
	if r.Packages != nil {
		if err := writeBucket(PackagesBucket, r.Packages); err != nil {
			return nil, err
		}
	}
	if len(r.Unmapped) > 0 {
		if err := writeBucket(UnmappedBucket, r.Unmapped); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
