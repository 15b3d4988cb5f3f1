package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/markokajkut/evdex/internal/export"
	"github.com/markokajkut/evdex/internal/pipeline"
)

// resultForRequest resolves the job and its parsed result, writing the
// error response itself when either is unavailable.
func (s *Server) resultForRequest(w http.ResponseWriter, r *http.Request) (pipeline.JobSnapshot, *pipeline.Result, bool) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return pipeline.JobSnapshot{}, nil, false
	}
	snap := job.Snapshot()
	res := job.Result()
	if res == nil {
		jsonError(w, fmt.Sprintf("no result available (status: %s)", snap.Status), http.StatusConflict)
		return snap, nil, false
	}
	return snap, res, true
}

func (s *Server) handleJobRecords(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.resultForRequest(w, r)
	if !ok {
		return
	}

	includeUnmapped := r.URL.Query().Get("unmapped") == "true"
	out, err := export.RecordsJSON(res.Records, includeUnmapped)
	if err != nil {
		jsonError(w, "encode records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

func (s *Server) handleJobTable(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.resultForRequest(w, r)
	if !ok {
		return
	}

	out, err := export.TableJSON(res.Table)
	if err != nil {
		jsonError(w, "encode table: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

func (s *Server) handleJobCSV(w http.ResponseWriter, r *http.Request) {
	snap, res, ok := s.resultForRequest(w, r)
	if !ok {
		return
	}

	delim := r.URL.Query().Get("comma")
	if delim == "" {
		delim = s.cfg.CSVDelimiter
	}

	base := strings.TrimSuffix(snap.Filename, filepath.Ext(snap.Filename))
	if base == "" {
		base = snap.DocID
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+".csv"))

	if err := export.WriteCSV(w, res.Table, firstRune(delim)); err != nil {
		s.log.Error("csv write failed", "job_id", snap.ID, "error", err)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
