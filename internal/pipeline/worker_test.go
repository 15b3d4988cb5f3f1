package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

const declarationTxt = `17 POSITIONSDATEN e-VD/v-e-VD
17a Positionsnummer
17d Menge
1
120
17.1 PACKSTÜCKE
17.1a Art der Packstücke
Kisten
`

func newTestWorker() *Worker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(nil, newDedupIndex(), NewParseStats(time.Hour), log, 2, false)
}

func newTestJob(filename string, data []byte) *Job {
	job := &Job{
		ID:        NewID(),
		DocID:     NewID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)
	return job
}

func TestWorker_ProcessTxtDeclaration(t *testing.T) {
	w := newTestWorker()
	job := newTestJob("decl.txt", []byte(declarationTxt))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors: %v)", StatusCompleted, snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Segments != 1 || snap.Progress.SegmentsParsed != 1 {
		t.Errorf("expected 1 segment parsed, got %d/%d", snap.Progress.SegmentsParsed, snap.Progress.Segments)
	}
	if snap.Progress.FieldsMapped != 3 {
		t.Errorf("expected 3 mapped fields, got %d", snap.Progress.FieldsMapped)
	}
	if snap.ContentHash == "" {
		t.Error("expected content hash to be recorded")
	}

	res := job.Result()
	if res == nil {
		t.Fatal("expected a result")
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	rec := res.Records[0]
	if v, _ := rec.Fields.Get("Menge"); v != "120" {
		t.Errorf("expected Menge=120, got %q", v)
	}
	if rec.Packages == nil {
		t.Fatal("expected package fields")
	}
	if v, _ := rec.Packages.Get("Art der Packstücke"); v != "Kisten" {
		t.Errorf("expected Art der Packstücke=Kisten, got %q", v)
	}
	if len(res.Table.Columns) != 3 {
		t.Errorf("expected 3 table columns, got %d", len(res.Table.Columns))
	}
}

func TestWorker_ProcessNoStructure(t *testing.T) {
	w := newTestWorker()
	job := newTestJob("notes.txt", []byte("nothing declaration-shaped in here\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Phase != "parsing" {
		t.Errorf("expected failure in parsing phase, got %q", snap.Phase)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected an error to be recorded")
	}
}

func TestWorker_ProcessUnsupportedExtension(t *testing.T) {
	w := newTestWorker()
	job := newTestJob("decl.xyz", []byte(declarationTxt))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Phase != "reading" {
		t.Errorf("expected failure in reading phase, got %q", snap.Phase)
	}
}

func TestWorker_ProcessDuplicateSkipped(t *testing.T) {
	w := newTestWorker()

	first := newTestJob("decl.txt", []byte(declarationTxt))
	w.Process(context.Background(), first)
	if s := first.Snapshot().Status; s != StatusCompleted {
		t.Fatalf("expected first job completed, got %q", s)
	}

	second := newTestJob("decl_copy.txt", []byte(declarationTxt))
	w.Process(context.Background(), second)

	snap := second.Snapshot()
	if snap.Status != StatusDupSkipped {
		t.Fatalf("expected status %q, got %q", StatusDupSkipped, snap.Status)
	}
	if second.Result() != nil {
		t.Error("expected no result on a skipped duplicate")
	}
}

func TestWorker_ProcessForceBypassesDedup(t *testing.T) {
	w := newTestWorker()

	first := newTestJob("decl.txt", []byte(declarationTxt))
	w.Process(context.Background(), first)

	second := newTestJob("decl.txt", []byte(declarationTxt))
	second.Force = true
	w.Process(context.Background(), second)

	snap := second.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected forced job to complete, got %q", snap.Status)
	}
	if second.Result() == nil {
		t.Error("expected forced job to carry a result")
	}
}

func TestNewID_UniqueAndWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q (len %d)", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}
