// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// LeaderboardHandler handles leaderboard reads and score submissions.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleLeaderboard dispatches GET (read) and POST (submit) on
// /api/leaderboard.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleGet handles GET /api/leaderboard?game=NAME&limit=N requests.
func (h *LeaderboardHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"

	game := r.URL.Query().Get("game")
	limit := 0 // store default
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		// Out-of-range limits clamp rather than error: zero falls back to
		// the store default, negatives to 1. The store clamps the upper end.
		switch {
		case n < 0:
			limit = 1
		case n > 0:
			limit = n
		}
	}

	board, err := h.deps.Leaderboard(r.Context(), game, limit)
	if err != nil {
		h.writeBoardError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, boardResponse{OK: true, Board: board})
}

// handlePost handles POST /api/leaderboard submissions.
func (h *LeaderboardHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_score"

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	board, err := h.deps.SubmitScore(r.Context(), req.Game, req.Name, req.Score)
	if err != nil {
		h.writeBoardError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, boardResponse{OK: true, Board: board})
}

// writeBoardError maps sanitizer rejections to 400 with a per-field code;
// anything else is a persistence failure.
func (h *LeaderboardHandler) writeBoardError(w http.ResponseWriter, op string, err error) {
	if code, rejected := rejectionCode(err); rejected {
		writeError(w, http.StatusBadRequest, code, Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
