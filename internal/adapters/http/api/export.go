// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/gridiron/internal/adapters/export"
)

// ExportHandler handles image export requests.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

type exportRequest struct {
	Size int `json:"size"`
}

// HandleExport handles POST /builders/{kind}/export requests. The
// response body is the rendered PNG; the suggested filename travels in
// Content-Disposition.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ed, err := h.deps.Editor(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	res, err := ed.Export(r.Context(), req.Size)
	if err != nil {
		if errors.Is(err, export.ErrLogosNotReady) {
			writeError(w, http.StatusServiceUnavailable, "logos_not_ready", err)
			return
		}
		writeEditorError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PNG)
}
