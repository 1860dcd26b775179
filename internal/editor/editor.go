package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/gridiron/internal/adapters/export"
	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/history"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ranking"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// LoadState is the tri-state load guard. Modeling it explicitly rules
// out the inconsistent "loaded but no data" combination a boolean flag
// would allow.
type LoadState int

// Load states.
const (
	Unloaded LoadState = iota
	Loading
	Loaded
)

// Editor owns one builder's ranked list, undo history, saves, and
// export pipeline. All methods are mutex-guarded; commit order is the
// lock acquisition order, which stands in for the browser's
// run-to-completion serialization.
type Editor struct {
	mu sync.Mutex

	cfg      BuilderConfig
	state    LoadState
	list     ranking.List
	hist     *history.Log
	defaults []model.Entity

	store    storage.Store
	exporter *export.Exporter
	log      logger.Logger
}

// Option applies a configuration option to the Editor.
type Option func(*Editor)

// WithLogger sets a custom logger for the editor.
func WithLogger(log logger.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs an editor for one builder.
func New(cfg BuilderConfig, store storage.Store, exporter *export.Exporter, opts ...Option) *Editor {
	e := &Editor{
		cfg:      cfg.withDefaults(),
		store:    store,
		exporter: exporter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the builder configuration.
func (e *Editor) Config() BuilderConfig {
	return e.cfg
}

// State returns the current load state.
func (e *Editor) State() LoadState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// BeginLoad moves Unloaded -> Loading. A builder loads exactly once
// per session; repeated attempts are rejected so a slow fetch can never
// clobber edits already in progress.
func (e *Editor) BeginLoad() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case Loading:
		return ErrLoadInProgress
	case Loaded:
		return ErrAlreadyLoaded
	}
	e.state = Loading
	return nil
}

// CompleteLoad moves Loading -> Loaded, seeding the list with
// rank = index+1 in input order and the history with snapshot 0. The
// input order is kept as the canonical default for Reset.
func (e *Editor) CompleteLoad(ctx context.Context, entities []model.Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loading {
		if e.state == Loaded {
			return ErrAlreadyLoaded
		}
		return ErrNotLoaded
	}

	e.defaults = append([]model.Entity(nil), entities...)
	e.list = ranking.Reset(entities)
	e.hist = history.NewLog(e.list, history.WithCapacity(e.cfg.HistoryLimit))
	e.state = Loaded

	e.updateGauges()
	e.logger().Info(ctx, "builder loaded",
		logger.String("builder", e.cfg.Key),
		logger.Int("entries", len(e.list)),
	)
	return nil
}

// AbortLoad moves Loading back to Unloaded after a failed fetch with
// no usable fallback.
func (e *Editor) AbortLoad() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Loading {
		e.state = Unloaded
	}
}

// List returns the current ranked list. Snapshots are immutable;
// callers must not modify the returned slice.
func (e *Editor) List() (ranking.List, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, ErrNotLoaded
	}
	return e.list, nil
}

// MoveByDrag applies a drag-and-drop move. A no-op drag leaves the
// list and history untouched and reports changed=false.
func (e *Editor) MoveByDrag(ctx context.Context, from, to int) (ranking.List, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, false, ErrNotLoaded
	}
	next, changed := ranking.MoveByDrag(e.list, from, to)
	if changed {
		e.commit(ctx, next, "drag")
	}
	return e.list, changed, nil
}

// MoveByRankEntry applies a direct rank edit. Invalid or unchanged
// ranks are silently discarded per the edit-gesture contract: no state
// mutation, no history push.
func (e *Editor) MoveByRankEntry(ctx context.Context, index, requestedRank int) (ranking.List, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, false, ErrNotLoaded
	}
	next, changed := ranking.MoveByRankEntry(e.list, index, requestedRank)
	if changed {
		e.commit(ctx, next, "rank_entry")
	}
	return e.list, changed, nil
}

// Add appends an entity. Duplicate ids are rejected and nothing is
// committed.
func (e *Editor) Add(ctx context.Context, entity model.Entity) (ranking.List, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, ErrNotLoaded
	}
	next, err := ranking.Add(e.list, entity)
	if err != nil {
		return e.list, err
	}
	e.commit(ctx, next, "add")
	return e.list, nil
}

// Remove deletes the entry at index.
func (e *Editor) Remove(ctx context.Context, index int) (ranking.List, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, ErrNotLoaded
	}
	next, err := ranking.Remove(e.list, index)
	if err != nil {
		return e.list, err
	}
	e.commit(ctx, next, "remove")
	return e.list, nil
}

// Reset restores the canonical default order captured at load (or the
// latest SetDefaults) and commits it as a normal mutation, so a reset
// is undoable.
func (e *Editor) Reset(ctx context.Context) (ranking.List, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, ErrNotLoaded
	}
	e.commit(ctx, ranking.Reset(e.defaults), "reset")
	return e.list, nil
}

// SetDefaults replaces the canonical default order without touching
// the user's current list. The standings poller feeds refreshed team
// records through here.
func (e *Editor) SetDefaults(entities []model.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defaults = append([]model.Entity(nil), entities...)
}

// Undo steps the history cursor back and restores that snapshot.
func (e *Editor) Undo(ctx context.Context) (ranking.List, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, false, ErrNotLoaded
	}
	snap, ok := e.hist.Undo()
	if ok {
		e.list = snap
		metrics.RecordUndo(e.cfg.Key)
		e.updateGauges()
	}
	return e.list, ok, nil
}

// Redo steps the history cursor forward and restores that snapshot.
func (e *Editor) Redo(ctx context.Context) (ranking.List, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, false, ErrNotLoaded
	}
	snap, ok := e.hist.Redo()
	if ok {
		e.list = snap
		metrics.RecordRedo(e.cfg.Key)
		e.updateGauges()
	}
	return e.list, ok, nil
}

// Save validates the name and appends a snapshot to the store, which
// enforces the FIFO cap.
func (e *Editor) Save(ctx context.Context, name string) (model.SavedRanking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return model.SavedRanking{}, ErrNotLoaded
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavedRanking{}, ErrEmptyName
	}
	if len(name) > e.cfg.MaxNameLength {
		return model.SavedRanking{}, ErrNameTooLong
	}

	rec := model.SavedRanking{
		ID:       uuid.NewString(),
		Name:     name,
		Date:     time.Now().UTC(),
		Rankings: e.list,
	}
	if err := e.store.Append(ctx, e.cfg.StorageKey, rec); err != nil {
		return model.SavedRanking{}, err
	}
	metrics.RecordSaveCreated(e.cfg.Key)
	e.refreshSavedCount(ctx)
	return rec, nil
}

// Saves lists the stored named rankings, oldest first.
func (e *Editor) Saves(ctx context.Context) ([]model.SavedRanking, error) {
	return e.store.List(ctx, e.cfg.StorageKey)
}

// DeleteSave removes the stored ranking at index. Confirmation is the
// caller's concern.
func (e *Editor) DeleteSave(ctx context.Context, index int) error {
	if err := e.store.Delete(ctx, e.cfg.StorageKey, index); err != nil {
		return err
	}
	metrics.RecordSaveDeleted(e.cfg.Key)
	e.refreshSavedCount(ctx)
	return nil
}

// LoadSave replaces the current list with the stored snapshot at index
// and re-seeds the history with it as the only snapshot; the previous
// undo history does not survive a load.
func (e *Editor) LoadSave(ctx context.Context, index int) (ranking.List, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Loaded {
		return nil, ErrNotLoaded
	}

	recs, err := e.store.List(ctx, e.cfg.StorageKey)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(recs) {
		return nil, storage.ErrNoSuchSave
	}

	e.list = ranking.List(recs[index].Rankings)
	e.hist.Reseed(e.list)
	e.updateGauges()
	e.logger().Info(ctx, "saved ranking loaded",
		logger.String("builder", e.cfg.Key),
		logger.String("name", recs[index].Name),
	)
	return e.list, nil
}

// Export renders the top-N slice. Size must be one of the builder's
// configured options; the slice is clamped to the list length.
func (e *Editor) Export(ctx context.Context, size int) (*export.Result, error) {
	e.mu.Lock()
	if e.state != Loaded {
		e.mu.Unlock()
		return nil, ErrNotLoaded
	}
	ok := false
	for _, s := range e.cfg.ExportSizes {
		if s == size {
			ok = true
			break
		}
	}
	if !ok {
		e.mu.Unlock()
		return nil, ErrBadExportSize
	}
	list := e.list
	e.mu.Unlock()

	if size > len(list) {
		size = len(list)
	}
	res, err := e.exporter.Export(ctx, export.Request{
		Title:   e.cfg.ExportTitle,
		Name:    e.cfg.Key,
		Entries: list[:size],
		Layout:  e.cfg.Layout,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordExport(e.cfg.Key)
	return res, nil
}

// CanUndo reports whether an undo would change state.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == Loaded && e.hist.CanUndo()
}

// CanRedo reports whether a redo would change state.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == Loaded && e.hist.CanRedo()
}

// Stats returns builder counters for the stats surface.
func (e *Editor) Stats() map[string]interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := map[string]interface{}{
		"loaded": e.state == Loaded,
	}
	if e.state == Loaded {
		stats["entries"] = len(e.list)
		stats["historyDepth"] = e.hist.Len()
		stats["canUndo"] = e.hist.CanUndo()
		stats["canRedo"] = e.hist.CanRedo()
	}
	return stats
}

// commit records a mutation: history push, list swap, gauges. Callers
// hold the mutex.
func (e *Editor) commit(ctx context.Context, next ranking.List, op string) {
	e.hist.Commit(next)
	e.list = next
	metrics.RecordListMutation(e.cfg.Key, op)
	e.updateGauges()
	e.logger().Debug(ctx, "mutation committed",
		logger.String("builder", e.cfg.Key),
		logger.String("op", op),
		logger.Int("entries", len(next)),
	)
}

func (e *Editor) updateGauges() {
	metrics.UpdateListLength(e.cfg.Key, len(e.list))
	if e.hist != nil {
		metrics.UpdateHistoryDepth(e.cfg.Key, e.hist.Len())
	}
}

func (e *Editor) refreshSavedCount(ctx context.Context) {
	if recs, err := e.store.List(ctx, e.cfg.StorageKey); err == nil {
		metrics.UpdateSavedCount(e.cfg.Key, len(recs))
	}
}

func (e *Editor) logger() logger.Logger {
	if e.log == nil {
		e.log = logger.Get()
	}
	return e.log
}
