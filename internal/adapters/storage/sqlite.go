package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
	"github.com/okian/gridiron/internal/domain/model"
)

// SQLiteStore implements Store on an embedded sqlite database. The seq
// column provides the FIFO order used for cap eviction and indexed
// deletes.
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

// NewSQLiteStore opens (or creates) the database at path and ensures
// the schema exists.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db, opts: newOptions(opts...)}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
    CREATE TABLE IF NOT EXISTS saved_rankings (
      seq INTEGER PRIMARY KEY AUTOINCREMENT,
      id TEXT NOT NULL,
      key TEXT NOT NULL,
      name TEXT NOT NULL,
      date TEXT NOT NULL,
      rankings TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_saved_rankings_key ON saved_rankings(key, seq);
    `)
	return err
}

// Append inserts a record and prunes the oldest rows past the cap.
func (s *SQLiteStore) Append(ctx context.Context, key string, rec model.SavedRanking) error {
	payload, err := json.Marshal(rec.Rankings)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO saved_rankings (id, key, name, date, rankings) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, key, rec.Name, rec.Date.Format(time.RFC3339), string(payload),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM saved_rankings WHERE key = ? AND seq NOT IN (
       SELECT seq FROM saved_rankings WHERE key = ? ORDER BY seq DESC LIMIT ?
     )`,
		key, key, s.opts.maxPerKey,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns all records under key, oldest first. Rows whose payload
// no longer parses are skipped rather than failing the whole read.
func (s *SQLiteStore) List(ctx context.Context, key string) ([]model.SavedRanking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, date, rankings FROM saved_rankings WHERE key = ? ORDER BY seq ASC`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SavedRanking, 0)
	for rows.Next() {
		var rec model.SavedRanking
		var date, payload string
		if err := rows.Scan(&rec.ID, &rec.Name, &date, &payload); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			rec.Date = t
		}
		if err := json.Unmarshal([]byte(payload), &rec.Rankings); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the record at index under key.
func (s *SQLiteStore) Delete(ctx context.Context, key string, index int) error {
	if index < 0 {
		return ErrNoSuchSave
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_rankings WHERE seq = (
       SELECT seq FROM saved_rankings WHERE key = ? ORDER BY seq ASC LIMIT 1 OFFSET ?
     )`,
		key, index,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSuchSave
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
