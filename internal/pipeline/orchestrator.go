// Package pipeline queues uploaded declaration documents and runs them
// through reading, parsing, flattening and optional downstream delivery.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/markokajkut/evdex/internal/config"
	"github.com/markokajkut/evdex/internal/deliver"
)

// Orchestrator manages the document extraction pipeline.
type Orchestrator struct {
	jobs      *JobStore
	queue     chan *Job
	deliverer *deliver.Client
	dedup     *dedupIndex
	stats     *ParseStats
	log       *slog.Logger
	cfg       config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. deliverer may be nil; results
// then stay available through the job store only.
func NewOrchestrator(cfg config.Config, deliverer *deliver.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		deliverer: deliverer,
		dedup:     newDedupIndex(),
		stats:     NewParseStats(time.Hour),
		log:       log,
		cfg:       cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.deliverer, o.dedup, o.stats, o.log, o.cfg.MaxConcurrentParse, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// ListJobs returns up to limit jobs, newest first.
func (o *Orchestrator) ListJobs(limit int) []*Job {
	return o.jobs.List(limit)
}

// DeleteJob removes a job and frees its content hash for re-upload.
func (o *Orchestrator) DeleteJob(id string) bool {
	if job := o.jobs.Get(id); job != nil {
		if hash := job.Snapshot().ContentHash; hash != "" {
			o.dedup.forget(hash)
		}
	}
	return o.jobs.Delete(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the rolling parse duration aggregate.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}
