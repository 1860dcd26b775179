// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/model"
)

// SavesHandler handles the named-save endpoints.
type SavesHandler struct {
	deps Dependencies
}

// NewSavesHandler creates a new saves handler.
func NewSavesHandler(deps Dependencies) *SavesHandler {
	return &SavesHandler{deps: deps}
}

type saveRequest struct {
	Name string `json:"name"`
}

// HandleList handles GET /builders/{kind}/saves requests.
func (h *SavesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ed, err := h.deps.Editor(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	saves, err := ed.Saves(r.Context())
	if err != nil {
		writeEditorError(w, err)
		return
	}
	if saves == nil {
		saves = []model.SavedRanking{}
	}
	writeJSON(w, http.StatusOK, saves)
}

// HandleCreate handles POST /builders/{kind}/saves requests.
func (h *SavesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ed, err := h.deps.Editor(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	rec, err := ed.Save(r.Context(), req.Name)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// HandleDelete handles DELETE /builders/{kind}/saves/{idx} requests.
func (h *SavesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ed, err := h.deps.Editor(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := ed.DeleteSave(r.Context(), idx); err != nil {
		if errors.Is(err, storage.ErrNoSuchSave) {
			writeError(w, http.StatusNotFound, "no_such_save", err)
			return
		}
		writeEditorError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLoad handles POST /builders/{kind}/saves/{idx}/load requests.
func (h *SavesHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	ed, err := h.deps.Editor(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	list, err := ed.LoadSave(r.Context(), idx)
	if err != nil {
		if errors.Is(err, storage.ErrNoSuchSave) {
			writeError(w, http.StatusNotFound, "no_such_save", err)
			return
		}
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: true, Entries: list})
}
