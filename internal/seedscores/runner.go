// Package seedscores floods a running score service with randomized
// submissions and verifies the resulting board ordering.
package seedscores

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stringball/scores/pkg/logger"
)

// Run executes one complete seeding pass: health check, concurrent
// submissions, final board fetch, ordering verification.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting score seeding",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("game", cfg.Game),
		logger.Int("count", cfg.Count),
		logger.Int("workers", cfg.Workers))

	c := newClient(cfg.Timeout)
	if err := c.health(ctx, cfg.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	subs := generate(ctx, cfg, stats)
	submitAll(ctx, cfg, c, subs, stats)

	board, err := c.board(ctx, cfg.BaseURL, cfg.Game, cfg.TopN)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.BoardSize = len(board.Entries)
	stats.Best = board.Best

	if err := verify(board); err != nil {
		return fmt.Errorf("board verification failed: %w", err)
	}

	stats.Duration = time.Since(stats.StartTime)
	displayFinalStats(stats)
	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// submitAll drains the submissions through a pool of workers.
func submitAll(ctx context.Context, cfg *Config, c *client, subs []Submission, stats *Stats) {
	var successful, rejected, failed atomic.Int64
	jobs := make(chan Submission)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				board, status, err := c.submit(ctx, cfg.BaseURL, sub)
				switch {
				case err != nil:
					failed.Add(1)
					logger.Get().Debug(ctx, "submission failed", logger.Error(err))
				case status == http.StatusBadRequest:
					rejected.Add(1)
				case status != http.StatusOK || board == nil || !board.OK:
					failed.Add(1)
				default:
					successful.Add(1)
				}
			}
		}()
	}

feed:
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- sub:
			stats.Submitted++
		}
	}
	close(jobs)
	wg.Wait()

	stats.Successful = int(successful.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())
}

// verify checks the returned board holds the ordering invariant: scores
// non-increasing, ranks dense from 1.
func verify(board *BoardResponse) error {
	for i, e := range board.Entries {
		if e.Rank != i+1 {
			return fmt.Errorf("rank %d at position %d", e.Rank, i)
		}
		if i > 0 && e.Score > board.Entries[i-1].Score {
			return fmt.Errorf("score %d at rank %d exceeds rank %d", e.Score, e.Rank, i)
		}
	}
	if len(board.Entries) > 0 && board.Best != board.Entries[0].Score {
		return fmt.Errorf("best %d does not match rank 1 score %d", board.Best, board.Entries[0].Score)
	}
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("boardSize", stats.BoardSize),
		logger.Int("best", stats.Best),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("submissionsPerSecond", perSecond))
}
