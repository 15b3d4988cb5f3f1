package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Delivery endpoint (optional; results stay local when unset)
	DeliverURL    string
	DeliverAPIKey string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentParse int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// CSV export default delimiter
	CSVDelimiter string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DeliverURL:    os.Getenv("DELIVER_URL"),
		DeliverAPIKey: os.Getenv("DELIVER_API_KEY"),

		WorkerCount:        envInt("WORKER_COUNT", 4),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentParse: envInt("MAX_CONCURRENT_PARSE", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		CSVDelimiter: envOr("CSV_DELIMITER", ","),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentParse <= 0 {
		cfg.MaxConcurrentParse = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.CSVDelimiter == "" {
		cfg.CSVDelimiter = ","
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DeliverAPIKey != "" && c.DeliverURL == "" {
		return fmt.Errorf("DELIVER_API_KEY is set but DELIVER_URL is not")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
