// Package workbook owns the on-disk representation of the score store: a
// single spreadsheet file holding every collection as a separate named sheet
// with a fixed header row (rank, name, score, at).
package workbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stringball/scores/internal/domain/model"
	"github.com/stringball/scores/internal/domain/sanitize"
)

// Spreadsheet sheet names are capped at 31 characters; collection keys allow
// up to 40, so keys are truncated deterministically when mapped to sheets.
const maxSheetNameLength = 31

// DefaultMaxRows caps the number of persisted rows per collection.
const DefaultMaxRows = 50

// DefaultPath is where the workbook lives unless configured otherwise.
const DefaultPath = "leaderboard.xlsx"

var header = []interface{}{"rank", "name", "score", "at"}

// Book wraps one open workbook file. A Book is not safe for concurrent
// mutation; the repository serializes writers through its gate and opens a
// fresh Book per operation.
type Book struct {
	path    string
	maxRows int
	file    *excelize.File
}

// Open loads the workbook at the configured path. An absent file is a valid
// empty store, not an error.
func Open(_ context.Context, opts ...Option) (*Book, error) {
	b := &Book{
		path:    DefaultPath,
		maxRows: DefaultMaxRows,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.path == "" {
		return nil, ErrNoPath
	}

	if _, err := os.Stat(b.path); err == nil {
		f, err := excelize.OpenFile(b.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenBook, err)
		}
		b.file = f
	} else if os.IsNotExist(err) {
		b.file = excelize.NewFile()
	} else {
		return nil, fmt.Errorf("%w: %v", ErrOpenBook, err)
	}
	return b, nil
}

// Path returns the backing file path.
func (b *Book) Path() string { return b.path }

// MaxRows returns the per-collection row cap.
func (b *Book) MaxRows() int { return b.maxRows }

// Games lists the collections present in the workbook.
func (b *Book) Games() []string {
	sheets := b.file.GetSheetList()
	games := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if strings.EqualFold(s, "Sheet1") {
			continue
		}
		games = append(games, s)
	}
	return games
}

// Sheet returns the sheet name for game, creating the sheet with its header
// row if absent. The mapping is the first 31 characters of the key.
func (b *Book) Sheet(game string) (string, error) {
	name := SheetName(game)
	idx, err := b.file.GetSheetIndex(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenBook, err)
	}
	if idx >= 0 {
		return name, nil
	}

	if _, err := b.file.NewSheet(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	if err := b.file.SetSheetRow(name, "A1", &header); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	for col, width := range map[string]float64{"A": 8, "B": 18, "C": 10, "D": 26} {
		_ = b.file.SetColWidth(name, col, col, width)
	}
	b.dropDefaultSheet(name)
	return name, nil
}

// dropDefaultSheet removes the placeholder sheet a fresh workbook starts
// with, once a real collection sheet exists.
func (b *Book) dropDefaultSheet(keep string) {
	const def = "Sheet1"
	if strings.EqualFold(keep, def) {
		return
	}
	idx, err := b.file.GetSheetIndex(def)
	if err != nil || idx < 0 {
		return
	}
	if rows, err := b.file.GetRows(def); err != nil || len(rows) > 0 {
		return
	}
	_ = b.file.DeleteSheet(def)
}

// Rows parses the data rows of a sheet in stored order. Corrupt rows
// (missing name, unparseable score) are skipped, not fatal. The formula
// escape apostrophe is stripped so callers always see display-ready names.
func (b *Book) Rows(sheet string) ([]model.Entry, error) {
	raw, err := b.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadBook, err)
	}
	entries := make([]model.Entry, 0, len(raw))
	for i, row := range raw {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 || row[1] == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		// Same coercion as the submission boundary, so a hand-edited cell
		// holding NaN or an overflowing value cannot corrupt the ranking.
		score, err := sanitize.Score(parsed)
		if err != nil {
			continue
		}
		at := ""
		if len(row) > 3 {
			at = row[3]
		}
		entries = append(entries, model.Entry{
			Rank:  len(entries) + 1,
			Name:  displayName(row[1]),
			Score: score,
			At:    at,
		})
	}
	return entries, nil
}

// SetRows replaces every data row of a sheet with rows, capped at the
// per-collection limit. The rank column is rewritten 1..n so the persisted
// artifact stays readable on its own.
func (b *Book) SetRows(sheet string, rows []model.Entry) error {
	existing, err := b.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadBook, err)
	}

	if len(rows) > b.maxRows {
		rows = rows[:b.maxRows]
	}
	for i, e := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		data := []interface{}{i + 1, storedName(e.Name), e.Score, e.At}
		if err := b.file.SetSheetRow(sheet, cell, &data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteBook, err)
		}
	}

	// Trim leftover rows beyond the new length, bottom up.
	for r := len(existing); r > len(rows)+1; r-- {
		if err := b.file.RemoveRow(sheet, r); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteBook, err)
		}
	}
	return nil
}

// Save flushes the workbook to disk via write-to-temp-then-rename so a
// concurrent reader never observes a partially written file.
func (b *Book) Save(_ context.Context) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	if err := b.file.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWriteBook, err)
	}
	return nil
}

// Close releases the underlying file resources.
func (b *Book) Close() error {
	if b.file == nil {
		return nil
	}
	return b.file.Close()
}

// SheetName maps a collection key to its deterministic sheet name.
func SheetName(game string) string {
	r := []rune(game)
	if len(r) > maxSheetNameLength {
		r = r[:maxSheetNameLength]
	}
	return string(r)
}

// storedName escapes names that a spreadsheet application would otherwise
// interpret as a formula.
func storedName(name string) string {
	if name == "" {
		return name
	}
	switch name[0] {
	case '=', '+', '-', '@':
		return "'" + name
	}
	return name
}

// displayName undoes storedName.
func displayName(name string) string {
	if len(name) > 1 && name[0] == '\'' {
		switch name[1] {
		case '=', '+', '-', '@':
			return name[1:]
		}
	}
	return name
}
