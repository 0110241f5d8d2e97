// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stringball/scores/internal/domain/model"
	"github.com/stringball/scores/internal/domain/sanitize"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Leaderboard returns the top view of one collection.
	Leaderboard(ctx context.Context, game string, limit int) (model.Board, error)

	// SubmitScore records a score and returns the refreshed top view.
	SubmitScore(ctx context.Context, game, name string, score float64) (model.Board, error)

	// BookPath locates the raw workbook artifact for export.
	BookPath() string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	exportHandler      *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps),
		exportHandler:      NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/leaderboard.xlsx", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
}

// submitRequest mirrors the POST /api/leaderboard body.
type submitRequest struct {
	Game  string  `json:"game"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// boardResponse is the shape of both leaderboard operations.
type boardResponse struct {
	OK bool `json:"ok"`
	model.Board
}

type errorResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{OK: false, Code: code, Message: msg})
}

// rejectionCode translates a sanitizer rejection into a stable error code a
// client can branch on. ok is false for any other error.
func rejectionCode(err error) (string, bool) {
	switch {
	case errors.Is(err, sanitize.ErrInvalidGame):
		return "invalid_game", true
	case errors.Is(err, sanitize.ErrInvalidName):
		return "invalid_name", true
	case errors.Is(err, sanitize.ErrInvalidScore):
		return "invalid_score", true
	}
	return "", false
}
