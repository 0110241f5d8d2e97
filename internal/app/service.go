// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stringball/scores/internal/adapters/publisher"
	"github.com/stringball/scores/internal/adapters/repository"
	"github.com/stringball/scores/internal/domain/model"
	"github.com/stringball/scores/internal/domain/sanitize"
	"github.com/stringball/scores/pkg/logger"
	"github.com/stringball/scores/pkg/metrics"
)

// publishTimeout bounds one best-effort replication attempt.
const publishTimeout = 30 * time.Second

// Service implements the API dependencies for the score store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store
	pub   publisher.Publisher

	// Configuration
	bookPath     string
	maxRows      int
	defaultLimit int

	// State
	started bool
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBookPath sets the workbook file backing every collection.
func WithBookPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.bookPath = path
		}
	}
}

// WithMaxRows sets the per-collection row cap.
func WithMaxRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// WithDefaultLimit sets the read limit used when callers pass none.
func WithDefaultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithPublisher sets the replication trigger fired on new rank-1 entries.
func WithPublisher(pub publisher.Publisher) Option {
	return func(s *Service) {
		if pub != nil {
			s.pub = pub
		}
	}
}

// WithStore injects a store implementation, replacing the default
// workbook-backed one. Used by tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		bookPath:     "leaderboard.xlsx",
		maxRows:      50,
		defaultLimit: repository.DefaultLimit,
		pub:          publisher.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewBookStore(ctx,
			repository.WithPath(s.bookPath),
			repository.WithMaxRows(s.maxRows),
			repository.WithDefaultLimit(s.defaultLimit),
		)
	}

	s.started = true
	s.logger.Info(ctx, "score service started",
		logger.String("bookPath", s.bookPath),
		logger.Int("maxRows", s.maxRows),
	)
	return nil
}

// Stop waits for in-flight replication attempts and shuts down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.wg.Wait()
	s.started = false
	s.logger.Info(context.Background(), "score service stopped")
}

// Leaderboard returns the top view of one collection.
func (s *Service) Leaderboard(ctx context.Context, game string, limit int) (model.Board, error) {
	board, err := s.store.TopN(ctx, game, limit)
	if err != nil {
		return model.Board{}, err
	}
	metrics.RecordBoardRead()
	return board, nil
}

// SubmitScore validates and records a submission, then fires the replication
// trigger out-of-band when the submission became the collection's new rank 1.
// Replication can never alter the returned board or error.
func (s *Service) SubmitScore(ctx context.Context, game, name string, score float64) (model.Board, error) {
	start := time.Now()
	board, won, err := s.store.Submit(ctx, game, name, score)
	if err != nil {
		if reason, rejected := rejectionReason(err); rejected {
			metrics.RecordSubmissionRejected(reason)
		}
		return model.Board{}, err
	}
	metrics.RecordSubmissionAccepted()
	metrics.RecordBoardWriteLatency(float64(time.Since(start).Milliseconds()))

	if won {
		s.logger.Info(ctx, "new top score",
			logger.String("game", board.Game),
			logger.Int("best", board.Best),
		)
		snap := publisher.Snapshot{
			Game:      board.Game,
			Best:      board.Best,
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
			Entries:   board.Entries,
			BookPath:  s.bookPath,
		}
		s.wg.Add(1)
		go s.publish(snap)
	}
	return board, nil
}

// publish runs one detached replication attempt. Failures are logged and
// dropped; the submission that triggered the attempt already returned.
func (s *Service) publish(snap publisher.Snapshot) {
	defer s.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.pub.Publish(ctx, snap); err != nil {
		metrics.RecordPublish(false)
		s.logger.Warn(ctx, "replication failed",
			logger.String("game", snap.Game),
			logger.Error(err),
		)
		return
	}
	metrics.RecordPublish(true)
	s.logger.Info(ctx, "replicated leaderboard",
		logger.String("game", snap.Game),
		logger.Int("best", snap.Best),
	)
}

// BookPath exposes the backing artifact location for the export endpoint.
func (s *Service) BookPath() string {
	return s.bookPath
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"bookPath": s.bookPath,
		"maxRows":  s.maxRows,
	}
	if s.started {
		if games, err := s.store.Games(context.Background()); err == nil {
			stats["collections"] = len(games)
			stats["games"] = games
			metrics.UpdateCollections(len(games))
		}
	}
	return stats
}

// rejectionReason maps a sanitizer rejection to its metric label.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, sanitize.ErrInvalidGame):
		return "game", true
	case errors.Is(err, sanitize.ErrInvalidName):
		return "name", true
	case errors.Is(err, sanitize.ErrInvalidScore):
		return "score", true
	}
	return "", false
}
