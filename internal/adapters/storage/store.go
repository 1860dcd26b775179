// Package storage defines the persistence adapter for named ranking
// snapshots, independent of the undo history. Stores keep a bounded
// FIFO list of saves per builder key.
package storage

import (
	"context"

	"github.com/okian/gridiron/internal/domain/model"
)

// Default store configuration constants.
const (
	defaultMaxPerKey = 10
)

// Store provides durable save/list/delete of named snapshots.
//
// Appending beyond the per-key cap evicts the oldest record first
// (FIFO). Reads of corrupt or missing data return an empty list, never
// an error; the saved-rankings surface treats parse failure as "no
// saves". Concurrent writers from separate processes race
// last-writer-wins; there is no cross-process locking.
type Store interface {
	// Append adds a record under key, evicting the oldest when the cap
	// would be exceeded.
	Append(ctx context.Context, key string, rec model.SavedRanking) error

	// List returns all records under key, oldest first.
	List(ctx context.Context, key string) ([]model.SavedRanking, error)

	// Delete removes the record at index under key.
	// Returns ErrNoSuchSave when the index does not exist.
	Delete(ctx context.Context, key string, index int) error

	// Close releases any underlying resources.
	Close() error
}
