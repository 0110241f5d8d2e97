package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stringball/scores/internal/adapters/workbook"
	"github.com/stringball/scores/internal/domain/model"
	"github.com/stringball/scores/internal/domain/sanitize"
)

// DefaultLimit is the number of entries returned when a caller does not ask
// for a specific limit.
const DefaultLimit = 10

// BookStore implements Store on top of the workbook codec.
//
// Every write is a full read-modify-rewrite of one collection, serialized
// through a single process-wide gate. The gate covers all collections: the
// backing store is one file, so cross-collection writes must not interleave
// anyway, and leaderboard writes are rare enough that serializing them is
// cheaper than proving anything finer grained correct.
//
// Reads take no lock. They open the file independently; because Save renames
// a fully written temp file into place, a reader sees either the pre- or
// post-write state, never a torn row.
type BookStore struct {
	path         string
	maxRows      int
	defaultLimit int
	gate         sync.Locker
	now          func() time.Time
}

// NewBookStore creates a workbook-backed store with default configuration.
func NewBookStore(_ context.Context, opts ...Option) *BookStore {
	s := &BookStore{
		path:         workbook.DefaultPath,
		maxRows:      workbook.DefaultMaxRows,
		defaultLimit: DefaultLimit,
		gate:         &sync.Mutex{},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing workbook path.
func (s *BookStore) Path() string { return s.path }

// TopN returns the current top view of a collection. The read is lock-free;
// see the type comment for why that is safe.
func (s *BookStore) TopN(ctx context.Context, game string, limit int) (model.Board, error) {
	g, err := sanitize.Game(game)
	if err != nil {
		return model.Board{}, fmt.Errorf("sanitize game: %w", err)
	}

	book, err := s.open(ctx)
	if err != nil {
		return model.Board{}, fmt.Errorf("%w: %v", ErrReadBoard, err)
	}
	defer book.Close()

	rows, err := s.readSorted(book, g)
	if err != nil {
		return model.Board{}, fmt.Errorf("%w: %v", ErrReadBoard, err)
	}
	return s.board(g, rows, limit), nil
}

// Submit records a score for a collection. Input rejection happens before
// any I/O; the read-modify-rewrite of the collection runs under the write
// gate; rank-1 detection and the returned view are computed from the rows
// just persisted.
func (s *BookStore) Submit(ctx context.Context, game, name string, score float64) (model.Board, bool, error) {
	g, err := sanitize.Game(game)
	if err != nil {
		return model.Board{}, false, fmt.Errorf("sanitize game: %w", err)
	}
	n, err := sanitize.Name(name)
	if err != nil {
		return model.Board{}, false, fmt.Errorf("sanitize name: %w", err)
	}
	sc, err := sanitize.Score(score)
	if err != nil {
		return model.Board{}, false, fmt.Errorf("sanitize score: %w", err)
	}

	rows, won, err := s.write(ctx, g, n, sc)
	if err != nil {
		return model.Board{}, false, err
	}
	return s.board(g, rows, s.defaultLimit), won, nil
}

// write is the critical section: it re-reads the collection fresh under the
// gate (another writer may have changed it), merges, re-ranks, truncates and
// rewrites the whole table.
func (s *BookStore) write(ctx context.Context, game, name string, score int) ([]model.Entry, bool, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	book, err := s.open(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrWriteBoard, err)
	}
	defer book.Close()

	sheet, err := book.Sheet(game)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrWriteBoard, err)
	}
	rows, err := book.Rows(sheet)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrWriteBoard, err)
	}
	sortByScore(rows)

	prevEmpty := len(rows) == 0
	prevBest := 0
	if !prevEmpty {
		prevBest = rows[0].Score
	}

	rows = append(rows, model.Entry{
		Name:  name,
		Score: score,
		At:    s.now().UTC().Format(time.RFC3339),
	})
	// Stable sort: a new entry tying an existing score lands after it, so
	// earlier achievers keep the better rank.
	sortByScore(rows)
	if len(rows) > s.maxRows {
		rows = rows[:s.maxRows]
	}

	if err := book.SetRows(sheet, rows); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrWriteBoard, err)
	}
	if err := book.Save(ctx); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrWriteBoard, err)
	}

	// Ties keep earlier entries ahead, so the submission is the new rank 1
	// only when it strictly beats the previous best or the table was empty.
	won := prevEmpty || score > prevBest
	return rows, won, nil
}

// Games lists persisted collections.
func (s *BookStore) Games(ctx context.Context) ([]string, error) {
	book, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadBoard, err)
	}
	defer book.Close()
	return book.Games(), nil
}

func (s *BookStore) open(ctx context.Context) (*workbook.Book, error) {
	return workbook.Open(ctx,
		workbook.WithPath(s.path),
		workbook.WithMaxRows(s.maxRows),
	)
}

func (s *BookStore) readSorted(book *workbook.Book, game string) ([]model.Entry, error) {
	sheet, err := book.Sheet(game)
	if err != nil {
		return nil, err
	}
	rows, err := book.Rows(sheet)
	if err != nil {
		return nil, err
	}
	sortByScore(rows)
	return rows, nil
}

func (s *BookStore) board(game string, rows []model.Entry, limit int) model.Board {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxRows {
		limit = s.maxRows
	}
	best := 0
	if len(rows) > 0 {
		best = rows[0].Score
	}
	return model.Board{Game: game, Best: best, Entries: rows}.Top(limit)
}

func sortByScore(rows []model.Entry) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
}
