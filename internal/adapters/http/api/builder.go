// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ranking"
	"github.com/okian/gridiron/internal/editor"
)

// BuilderHandler handles ranked-list reads and mutations.
type BuilderHandler struct {
	deps Dependencies
}

// NewBuilderHandler creates a new builder handler.
func NewBuilderHandler(deps Dependencies) *BuilderHandler {
	return &BuilderHandler{deps: deps}
}

// listResponse mirrors the ranked-list read shape.
type listResponse struct {
	Kind    string              `json:"kind"`
	Entries []model.RankedEntry `json:"entries"`
	CanUndo bool                `json:"can_undo"`
	CanRedo bool                `json:"can_redo"`
}

// mutationResponse reports a mutation outcome. Changed is false when
// the request was valid in shape but discarded (no-op drag, invalid
// rank edit); no state was mutated in that case.
type mutationResponse struct {
	Changed bool                `json:"changed"`
	Entries []model.RankedEntry `json:"entries"`
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type rankRequest struct {
	Index int `json:"index"`
	Rank  int `json:"rank"`
}

func (h *BuilderHandler) editor(w http.ResponseWriter, r *http.Request) (*editor.Editor, bool) {
	ed, err := h.deps.Editor(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return nil, false
	}
	return ed, true
}

// HandleGet handles GET /builders/{kind} requests.
func (h *BuilderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	list, err := ed.List()
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Kind:    ed.Config().Key,
		Entries: list,
		CanUndo: ed.CanUndo(),
		CanRedo: ed.CanRedo(),
	})
}

// HandlePool handles GET /builders/{kind}/pool requests. The pool is
// the set of entities a client may add to the list; when the upstream
// feed was unreachable at startup it equals the seed list.
func (h *BuilderHandler) HandlePool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.deps.Pool(r.PathValue("kind"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	if pool == nil {
		pool = []model.Entity{}
	}
	writeJSON(w, http.StatusOK, pool)
}

// HandleMove handles POST /builders/{kind}/move requests.
func (h *BuilderHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	list, changed, err := ed.MoveByDrag(r.Context(), req.From, req.To)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, Entries: list})
}

// HandleRank handles POST /builders/{kind}/rank requests. An invalid
// requested rank is not an error: the edit is discarded and the
// response carries changed:false with the list untouched.
func (h *BuilderHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	list, changed, err := ed.MoveByRankEntry(r.Context(), req.Index, req.Rank)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, Entries: list})
}

// HandleAdd handles POST /builders/{kind}/entries requests.
func (h *BuilderHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var entity model.Entity
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(entity.ID) == "" || strings.TrimSpace(entity.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	list, err := ed.Add(r.Context(), entity)
	if err != nil {
		if errors.Is(err, ranking.ErrDuplicateEntity) {
			writeError(w, http.StatusConflict, "duplicate_entity", err)
			return
		}
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: true, Entries: list})
}

// HandleRemove handles DELETE /builders/{kind}/entries/{idx} requests.
func (h *BuilderHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	list, err := ed.Remove(r.Context(), idx)
	if err != nil {
		if errors.Is(err, ranking.ErrIndexOutOfRange) {
			writeError(w, http.StatusBadRequest, "index_out_of_range", err)
			return
		}
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: true, Entries: list})
}

// HandleReset handles POST /builders/{kind}/reset requests.
func (h *BuilderHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	list, err := ed.Reset(r.Context())
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: true, Entries: list})
}

// undoResponse reports an undo or redo outcome. Applied is false at
// the history boundary.
type undoResponse struct {
	Applied bool                `json:"applied"`
	Entries []model.RankedEntry `json:"entries"`
}

// HandleUndo handles POST /builders/{kind}/undo requests.
func (h *BuilderHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	list, applied, err := ed.Undo(r.Context())
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, undoResponse{Applied: applied, Entries: list})
}

// HandleRedo handles POST /builders/{kind}/redo requests.
func (h *BuilderHandler) HandleRedo(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	list, applied, err := ed.Redo(r.Context())
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, undoResponse{Applied: applied, Entries: list})
}
