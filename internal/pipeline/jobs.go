package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/markokajkut/evdex/internal/evd"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusReading    JobStatus = "reading"
	StatusParsing    JobStatus = "parsing"
	StatusFlattening JobStatus = "flattening"
	StatusDelivering JobStatus = "delivering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single document extraction.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title,omitempty"`

	// Force skips the duplicate-content check for this job.
	Force bool `json:"force,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *Result
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	Segments       int      `json:"segments"`
	SegmentsParsed int      `json:"segments_parsed"`
	FieldsMapped   int      `json:"fields_mapped"`
	FieldsEmpty    int      `json:"fields_empty"`
	UnmappedValues int      `json:"unmapped_values"`
	Errors         []string `json:"errors"`
}

// Result holds the parsed output of a completed job.
type Result struct {
	Records []evd.Record
	Table   *evd.Table
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Delete removes a job. Returns false if the job was not present.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// List returns up to limit jobs, newest first.
func (s *JobStore) List(limit int) []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrSegmentsParsed atomically increments the parsed segment count.
func (j *Job) IncrSegmentsParsed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SegmentsParsed++
	j.UpdatedAt = time.Now()
}

// AddFieldCounts records mapped, empty and unmapped field tallies.
func (j *Job) AddFieldCounts(mapped, empty, unmapped int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FieldsMapped += mapped
	j.Progress.FieldsEmpty += empty
	j.Progress.UnmappedValues += unmapped
	j.UpdatedAt = time.Now()
}

// SetSegments records the total segment count.
func (j *Job) SetSegments(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Segments = n
	j.UpdatedAt = time.Now()
}

// SetContentHash records the normalized content hash.
func (j *Job) SetContentHash(h string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = h
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the parsed output and releases the raw file bytes.
func (j *Job) SetResult(res *Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the parsed output, or nil while the job is running.
func (j *Job) Result() *Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	DocID       string    `json:"doc_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		DocID:       j.DocID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
		Progress: Progress{
			Segments:       j.Progress.Segments,
			SegmentsParsed: j.Progress.SegmentsParsed,
			FieldsMapped:   j.Progress.FieldsMapped,
			FieldsEmpty:    j.Progress.FieldsEmpty,
			UnmappedValues: j.Progress.UnmappedValues,
			Errors:         errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
