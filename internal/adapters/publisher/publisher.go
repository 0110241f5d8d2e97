// Package publisher mirrors a collection's current state to an external
// destination when a submission becomes the new rank 1. Publishing is best
// effort: the caller fires it after the write path has finished and drops
// any error after logging it.
package publisher

import (
	"context"

	"github.com/stringball/scores/internal/domain/model"
)

// Snapshot is the unit of replication: a compact summary of one collection
// plus the location of the already-flushed workbook artifact.
type Snapshot struct {
	Game      string        `json:"game"`
	Best      int           `json:"best"`
	UpdatedAt string        `json:"updatedAt"`
	Entries   []model.Entry `json:"entries"`

	// BookPath is the on-disk workbook to mirror alongside the summary.
	// It is not part of the JSON artifact.
	BookPath string `json:"-"`
}

// Publisher mirrors a snapshot to an external destination.
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// Noop is the inert publisher used when replication is not configured.
type Noop struct{}

// Publish does nothing.
func (Noop) Publish(context.Context, Snapshot) error { return nil }
