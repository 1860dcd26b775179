package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/okian/gridiron/internal/domain/model"
)

// FileStore implements Store on a single JSON file. Every mutation
// rewrites the file through a temp-file-then-rename so readers never
// observe a partial write.
type FileStore struct {
	mu     sync.Mutex
	path   string
	saves  map[string][]model.SavedRanking
	opts   options
	closed bool
}

// NewFileStore creates a file-backed store at path, loading any
// existing contents. Unparsable contents are treated as empty, not as
// an error.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{
		path:  path,
		saves: make(map[string][]model.SavedRanking),
		opts:  newOptions(opts...),
	}
	s.load()
	return s, nil
}

// load reads the file into memory. Missing or corrupt files read as
// "no saves".
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var saves map[string][]model.SavedRanking
	if err := json.Unmarshal(data, &saves); err != nil {
		return
	}
	s.saves = saves
}

// flush writes the current state to a temp file and renames it over the
// target path.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.saves, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Append adds a record under key, evicting the oldest at the cap.
func (s *FileStore) Append(ctx context.Context, key string, rec model.SavedRanking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	recs := append(s.saves[key], rec)
	if len(recs) > s.opts.maxPerKey {
		recs = recs[len(recs)-s.opts.maxPerKey:]
	}
	s.saves[key] = recs
	return s.flush()
}

// List returns all records under key, oldest first.
func (s *FileStore) List(ctx context.Context, key string) ([]model.SavedRanking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	recs := s.saves[key]
	out := make([]model.SavedRanking, len(recs))
	copy(out, recs)
	return out, nil
}

// Delete removes the record at index under key.
func (s *FileStore) Delete(ctx context.Context, key string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	recs := s.saves[key]
	if index < 0 || index >= len(recs) {
		return ErrNoSuchSave
	}
	s.saves[key] = append(recs[:index], recs[index+1:]...)
	return s.flush()
}

// Close marks the store closed. State is flushed on every mutation so
// nothing is pending here.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
