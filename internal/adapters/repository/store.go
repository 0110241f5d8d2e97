// Package repository defines the ranked score store interface and its
// workbook-backed implementation.
package repository

import (
	"context"

	"github.com/stringball/scores/internal/domain/model"
)

// Store provides read/write access to the per-collection ranking state.
// It is the only component permitted to mutate a collection.
type Store interface {
	// TopN returns the top entries for a collection. limit is clamped to
	// [1, max rows]; zero or negative means the default limit.
	TopN(ctx context.Context, game string, limit int) (model.Board, error)

	// Submit validates and records a score, returning the refreshed top
	// view and whether the submission became the collection's new rank 1.
	Submit(ctx context.Context, game, name string, score float64) (model.Board, bool, error)

	// Games lists the collections currently persisted.
	Games(ctx context.Context) ([]string, error)
}
