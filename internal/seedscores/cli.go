package seedscores

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/stringball/scores/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`Score Seeding Tool
==================

Floods a running score service with randomized submissions and verifies
the resulting leaderboard ordering.

Usage:
  go run cmd/seed-scores/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -game string
        Collection to submit into (default "thermal-drift")
  -count int
        Number of submissions to send (default 500)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -top int
        Entries to fetch for the final verification (default 50)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-scores/main.go

  # Seed a different collection hard
  go run cmd/seed-scores/main.go -game frost-signal -count 5000 -workers 16
`)
}
