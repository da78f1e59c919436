// Package badger stores the trial log snapshot in an embedded BadgerDB.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

// Config holds configuration for the BadgerDB instance
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM; used by tests
	InMemory bool

	// SyncWrites fsyncs every commit
	SyncWrites bool

	// Logger receives BadgerDB's own messages. Nil silences them.
	Logger app.Logger
}

// DefaultConfig returns a durable configuration for path
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns configuration for tests
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts app.Logger to BadgerDB's Logger interface
type badgerLogger struct {
	logger app.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.logger.Error(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.logger.Warn(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.logger.Debug(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.logger.Debug(format, args...) }

// StateStore keeps the snapshot under output.StateKey
type StateStore struct {
	db *badger.DB
}

var _ output.StateStore = (*StateStore)(nil)

// Open opens the database described by cfg
func Open(cfg Config) (*StateStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &StateStore{db: db}, nil
}

// Load reads the snapshot or returns ErrNoState
func (s *StateStore) Load(ctx context.Context) (*dto.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(output.StateKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, output.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	snap, err := dto.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt stored state: %w", err)
	}
	return snap, nil
}

// Save replaces the snapshot in one transaction
func (s *StateStore) Save(ctx context.Context, snap *dto.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(output.StateKey), data)
	}); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Close closes the database
func (s *StateStore) Close() error {
	return s.db.Close()
}
