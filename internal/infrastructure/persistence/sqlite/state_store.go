// Package sqlite stores the trial log snapshot in a SQLite key-value table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

// StateStore keeps the snapshot under output.StateKey in kv_store
type StateStore struct {
	db     *sql.DB
	logger app.Logger
}

var _ output.StateStore = (*StateStore)(nil)

// Open opens (creating if needed) the database at path and migrates it
func Open(ctx context.Context, path string, logger app.Logger) (*StateStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	store, err := NewStateStore(ctx, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStateStore wraps an open database and applies the schema
func NewStateStore(ctx context.Context, db *sql.DB, logger app.Logger) (*StateStore, error) {
	if logger == nil {
		logger = app.NopLogger{}
	}
	if err := NewMigrator(db).Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &StateStore{db: db, logger: logger}, nil
}

// Load reads the stored snapshot or returns ErrNoState
func (s *StateStore) Load(ctx context.Context) (*dto.Snapshot, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", output.StateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, output.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	snap, err := dto.DecodeSnapshot([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("corrupt stored state: %w", err)
	}
	return snap, nil
}

// Save upserts the snapshot
func (s *StateStore) Save(ctx context.Context, snap *dto.Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, output.StateKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.logger.Debug("saved %d bytes under %s", len(data), output.StateKey)
	return nil
}

// Close closes the database
func (s *StateStore) Close() error {
	return s.db.Close()
}
