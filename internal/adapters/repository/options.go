package repository

import (
	"sync"
	"time"
)

// Option applies a configuration option to the BookStore.
type Option func(*BookStore)

// WithPath sets the backing workbook path.
func WithPath(path string) Option {
	return func(s *BookStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithMaxRows sets the per-collection row cap.
func WithMaxRows(n int) Option {
	return func(s *BookStore) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// WithDefaultLimit sets the entry count returned when callers pass no limit.
func WithDefaultLimit(n int) Option {
	return func(s *BookStore) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithGate injects the write-serialization gate. Useful for sharing one
// gate across stores or observing lock acquisition in tests.
func WithGate(gate sync.Locker) Option {
	return func(s *BookStore) {
		if gate != nil {
			s.gate = gate
		}
	}
}

// WithClock injects the timestamp source for accepted submissions.
func WithClock(now func() time.Time) Option {
	return func(s *BookStore) {
		if now != nil {
			s.now = now
		}
	}
}
