// Package ranking implements the reorder engine: pure operations that
// compute a new, rank-renumbered list from a requested structural change.
// Inputs are never mutated so callers can snapshot results by reference.
package ranking

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// List is an ordered sequence of ranked entries. After any operation in
// this package, entry i holds rank i+1 and entity ids are unique.
type List []model.RankedEntry

// Reset builds a fresh list from entities in input order, assigning
// contiguous ranks starting at 1. Duplicate ids keep the first occurrence.
func Reset(entities []model.Entity) List {
	out := make(List, 0, len(entities))
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, model.RankedEntry{Rank: len(out) + 1, Entity: e})
	}
	return out
}

// MoveByDrag removes the entry at from and reinserts it at to, then
// renumbers ranks 1..N. A no-op drag (from == to) or an out-of-range
// index returns the input unchanged with changed=false so the caller
// skips the history commit.
func MoveByDrag(list List, from, to int) (List, bool) {
	if from == to {
		return list, false
	}
	n := len(list)
	if from < 0 || from >= n || to < 0 || to >= n {
		return list, false
	}

	out := make(List, 0, n)
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	moved := list[from]
	out = append(out[:to], append(List{moved}, out[to:]...)...)
	renumber(out)
	return out, true
}

// MoveByRankEntry moves the entry at source to the position implied by
// requestedRank. Invalid ranks (outside [1..N]) and ranks equal to the
// current one are rejected silently: the input comes back unchanged and
// changed=false, mirroring the discard-on-invalid edit gesture.
func MoveByRankEntry(list List, source, requestedRank int) (List, bool) {
	n := len(list)
	if source < 0 || source >= n {
		return list, false
	}
	if requestedRank < 1 || requestedRank > n {
		return list, false
	}
	if requestedRank == list[source].Rank {
		return list, false
	}
	return MoveByDrag(list, source, requestedRank-1)
}

// Remove deletes the entry at index and renumbers the remainder.
func Remove(list List, index int) (List, error) {
	if index < 0 || index >= len(list) {
		return list, ErrIndexOutOfRange
	}
	out := make(List, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	renumber(out)
	return out, nil
}

// Add appends entity with rank N+1. Returns ErrDuplicateEntity when the
// id is already present; the input list is returned unchanged.
func Add(list List, e model.Entity) (List, error) {
	if ContainsID(list, e.ID) {
		return list, ErrDuplicateEntity
	}
	out := make(List, len(list), len(list)+1)
	copy(out, list)
	out = append(out, model.RankedEntry{Rank: len(out) + 1, Entity: e})
	return out, nil
}

// ContainsID reports whether an entity with the given id is in the list.
func ContainsID(list List, id string) bool {
	for _, entry := range list {
		if entry.Entity.ID == id {
			return true
		}
	}
	return false
}

// Entities returns the entities of the list in rank order.
func Entities(list List) []model.Entity {
	out := make([]model.Entity, len(list))
	for i, entry := range list {
		out[i] = entry.Entity
	}
	return out
}

func renumber(list List) {
	for i := range list {
		list[i].Rank = i + 1
	}
}
