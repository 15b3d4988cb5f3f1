// Package api exposes the extraction pipeline over HTTP: document upload,
// job polling and result retrieval in JSON and CSV form.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/markokajkut/evdex/internal/config"
	"github.com/markokajkut/evdex/internal/pipeline"
)

// Server is the HTTP API server for evdex.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/extract", s.handleExtract)
	r.Post("/api/extract/batch", s.handleBatchExtract)
	r.Get("/api/extract", s.handleListJobs)
	r.Get("/api/extract/{jobID}/status", s.handleJobStatus)
	r.Get("/api/extract/{jobID}/records", s.handleJobRecords)
	r.Get("/api/extract/{jobID}/table", s.handleJobTable)
	r.Get("/api/extract/{jobID}/csv", s.handleJobCSV)
	r.Delete("/api/extract/{jobID}", s.handleDeleteJob)

	r.Get("/api/stats/parse", s.handleParseStats)
	r.Get("/api/formats", s.handleFormats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
