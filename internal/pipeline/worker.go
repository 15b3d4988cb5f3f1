package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/markokajkut/evdex/internal/deliver"
	"github.com/markokajkut/evdex/internal/evd"
	"github.com/markokajkut/evdex/internal/reader"
)

// dedupIndex maps content hashes to document IDs so a re-uploaded file
// can be skipped instead of parsed again.
type dedupIndex struct {
	mu     sync.Mutex
	byHash map[string]string
}

func newDedupIndex() *dedupIndex {
	return &dedupIndex{byHash: make(map[string]string)}
}

func (d *dedupIndex) lookup(hash string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	docID, ok := d.byHash[hash]
	return docID, ok
}

func (d *dedupIndex) remember(hash, docID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byHash[hash] = docID
}

func (d *dedupIndex) forget(hash string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.byHash, hash)
}

// Worker processes a single document job.
type Worker struct {
	deliverer *deliver.Client
	dedup     *dedupIndex
	stats     *ParseStats
	log       *slog.Logger

	maxConcurrentParse int
	pdfFallback        bool
}

func NewWorker(deliverer *deliver.Client, dedup *dedupIndex, stats *ParseStats, log *slog.Logger, maxParse int, pdfFallback bool) *Worker {
	return &Worker{
		deliverer:          deliverer,
		dedup:              dedup,
		stats:              stats,
		log:                log,
		maxConcurrentParse: maxParse,
		pdfFallback:        pdfFallback,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Read the file into a flat line stream.
	job.SetStatus(StatusReading, "reading")
	rd, err := reader.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}
	if pdfRd, ok := rd.(*reader.PDFReader); ok {
		pdfRd.FallbackPdftotext = w.pdfFallback
	}

	text, err := rd.Read(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}
	text = evd.PrefixBareLabels(text)

	// Hash the normalized text, not the raw bytes, so the same form
	// re-exported through a different container still deduplicates.
	job.SetContentHash(ContentHashHex([]byte(text)))

	// Phase 1.5: Dedup check.
	if !job.Force {
		if existingDocID, ok := w.dedup.lookup(job.ContentHash); ok {
			log.Info("duplicate document, skipping", "existing_doc_id", existingDocID)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Parse position sections with bounded concurrency.
	job.SetStatus(StatusParsing, "parsing")
	parseStart := time.Now()

	segments := evd.Segments(text)
	if len(segments) == 0 {
		log.Warn("no position sections found")
		job.AddError(evd.ErrNoStructure.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetSegments(len(segments))
	log.Info("segmented document", "segments", len(segments))

	type segResult struct {
		record evd.Record
		idx    int
	}
	results := make(chan segResult, len(segments))
	sem := make(chan struct{}, w.maxConcurrentParse)

	for i, seg := range segments {
		sem <- struct{}{}
		go func(i int, seg string) {
			defer func() { <-sem }()
			results <- segResult{record: evd.ParseSegment(seg), idx: i}
		}(i, seg)
	}

	records := make([]evd.Record, len(segments))
	for range segments {
		r := <-results
		records[r.idx] = r.record
		job.IncrSegmentsParsed()

		mapped, empty := countFields(r.record.Fields)
		pm, pe := countFields(r.record.Packages)
		job.AddFieldCounts(mapped+pm, empty+pe, len(r.record.Unmapped))
	}

	// Phase 3: Flatten into the tabular form.
	job.SetStatus(StatusFlattening, "flattening")
	table := evd.Flatten(records)
	job.SetResult(&Result{Records: records, Table: table})
	w.dedup.remember(job.ContentHash, job.DocID)

	if w.stats != nil {
		w.stats.Record(time.Since(parseStart).Milliseconds(), len(segments))
	}
	snap := job.Snapshot()
	log.Info("parse complete",
		"segments", len(segments),
		"fields_mapped", snap.Progress.FieldsMapped,
		"unmapped_values", snap.Progress.UnmappedValues)

	// Phase 4: Deliver downstream, if configured.
	if w.deliverer == nil {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	job.SetStatus(StatusDelivering, "delivering")
	payload := deliver.Delivery{
		DocID:       job.DocID,
		Filename:    job.Filename,
		ContentHash: job.ContentHash,
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
		Records:     records,
		Columns:     table.Columns,
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = w.deliverer.Deliver(ctx, payload)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable delivery error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		log.Error("delivery failed", "error", lastErr)
		job.AddError(fmt.Sprintf("deliver: %s", lastErr))
		job.SetStatus(StatusPartial, "done")
		return
	}

	log.Info("delivery complete")
	job.SetStatus(StatusCompleted, "done")
}

// countFields tallies filled and empty values in a field map.
func countFields(fm *evd.FieldMap) (mapped, empty int) {
	if fm == nil {
		return 0, 0
	}
	for _, label := range fm.Labels() {
		if v, _ := fm.Get(label); v == "" {
			empty++
		} else {
			mapped++
		}
	}
	return mapped, empty
}
