package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/markokajkut/evdex/internal/api"
	"github.com/markokajkut/evdex/internal/config"
	"github.com/markokajkut/evdex/internal/deliver"
	"github.com/markokajkut/evdex/internal/pipeline"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Delivery is optional; without it results stay in the job store.
	var deliverer *deliver.Client
	if cfg.DeliverURL != "" {
		deliverer = deliver.NewClient(cfg.DeliverURL, cfg.DeliverAPIKey)
		log.Info("downstream delivery enabled", "url", cfg.DeliverURL)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, deliverer, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if deliverer != nil {
			deliverer.Close()
		}
	}()

	log.Info("starting evdex", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
