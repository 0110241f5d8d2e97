package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/stringball/scores/internal/seedscores"
)

// Default configuration constants.
const (
	defaultCount      = 500
	defaultTopN       = 50
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		game    = flag.String("game", "thermal-drift", "Collection to submit into")
		count   = flag.Int("count", defaultCount, "Number of submissions to send")
		topN    = flag.Int("top", defaultTopN, "Entries to fetch for the final verification")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedscores.ShowHelp()
		return
	}

	if err := seedscores.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seedscores.Config{
		BaseURL: *baseURL,
		Game:    *game,
		Count:   *count,
		Workers: *workers,
		Timeout: *timeout,
		TopN:    *topN,
		LogFile: *logFile,
	}

	if err := seedscores.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
