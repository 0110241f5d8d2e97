// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"os"
)

// xlsxContentType is the MIME type of the workbook artifact.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the raw workbook so operators can audit or import
// the whole dataset without going through the API.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /api/leaderboard.xlsx requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_book"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := h.deps.BookPath()
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNoBook))
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	http.ServeFile(w, r, path)
}
