// Package history maintains undo/redo semantics over ranked-list
// mutations as a bounded log of immutable snapshots plus a cursor.
package history

import (
	"github.com/okian/gridiron/internal/domain/ranking"
)

// Default history configuration constants.
const (
	defaultCapacity = 50
)

// Log is a bounded sequence of snapshots. The cursor always points at
// the snapshot the view currently displays. Not safe for concurrent use;
// callers serialize access.
type Log struct {
	snapshots []ranking.List
	cursor    int
	capacity  int
}

// NewLog creates a log seeded with the first loaded list as snapshot 0.
func NewLog(initial ranking.List, opts ...Option) *Log {
	l := &Log{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.snapshots = append(make([]ranking.List, 0, l.capacity), initial)
	l.cursor = 0
	return l
}

// Commit records a new snapshot: any redo entries beyond the cursor are
// truncated first, then the snapshot is appended and the cursor advances.
// At capacity the oldest snapshot is evicted instead, so the window
// slides and the cursor stays at the last valid index.
func (l *Log) Commit(list ranking.List) {
	l.snapshots = append(l.snapshots[:l.cursor+1], list)
	if len(l.snapshots) > l.capacity {
		l.snapshots = l.snapshots[1:]
	}
	l.cursor = len(l.snapshots) - 1
}

// Undo moves the cursor back one snapshot. At the oldest snapshot it is
// a no-op and reports false.
func (l *Log) Undo() (ranking.List, bool) {
	if l.cursor <= 0 {
		return l.Current(), false
	}
	l.cursor--
	return l.snapshots[l.cursor], true
}

// Redo moves the cursor forward one snapshot. At the newest snapshot it
// is a no-op and reports false.
func (l *Log) Redo() (ranking.List, bool) {
	if l.cursor >= len(l.snapshots)-1 {
		return l.Current(), false
	}
	l.cursor++
	return l.snapshots[l.cursor], true
}

// Current returns the snapshot under the cursor.
func (l *Log) Current() ranking.List {
	return l.snapshots[l.cursor]
}

// Reseed discards all history and starts over with list as the only
// snapshot. Used when a saved ranking is loaded: the previous undo
// history does not survive.
func (l *Log) Reseed(list ranking.List) {
	l.snapshots = append(l.snapshots[:0], list)
	l.cursor = 0
}

// CanUndo reports whether an undo would change the cursor.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a redo would change the cursor.
func (l *Log) CanRedo() bool { return l.cursor < len(l.snapshots)-1 }

// Len returns the number of snapshots currently held.
func (l *Log) Len() int { return len(l.snapshots) }

// Cursor returns the current cursor position.
func (l *Log) Cursor() int { return l.cursor }
