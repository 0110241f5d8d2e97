// Package model contains domain models passed between layers.
package model

// Entry represents one ranked row within a collection. Rank is derived from
// position when the collection is read, never trusted from storage.
type Entry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	At    string `json:"at"` // RFC3339 acceptance timestamp
}

// Board is the read view of a single collection: its key, the current best
// score (0 when empty) and the top entries in rank order.
type Board struct {
	Game    string  `json:"game"`
	Best    int     `json:"best"`
	Entries []Entry `json:"entries"`
}

// Top returns the first n entries of b with ranks renumbered from 1.
func (b Board) Top(n int) Board {
	if n < 0 {
		n = 0
	}
	if n > len(b.Entries) {
		n = len(b.Entries)
	}
	out := Board{Game: b.Game, Best: b.Best, Entries: make([]Entry, n)}
	for i := 0; i < n; i++ {
		out.Entries[i] = b.Entries[i]
		out.Entries[i].Rank = i + 1
	}
	return out
}
