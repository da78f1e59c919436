// Package file keeps the trial log snapshot and file backups on a
// filesystem through afero.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

const statePerm = 0o600

// StateStore persists the snapshot as a single JSON document
type StateStore struct {
	mu     sync.Mutex
	fs     afero.Fs
	path   string
	logger app.Logger
}

var _ output.StateStore = (*StateStore)(nil)

// NewStateStore creates a store writing to path on fs
func NewStateStore(fs afero.Fs, path string, logger app.Logger) *StateStore {
	if logger == nil {
		logger = app.NopLogger{}
	}
	return &StateStore{fs: fs, path: path, logger: logger}
}

// Load reads the snapshot. A missing file is ErrNoState.
func (s *StateStore) Load(ctx context.Context) (*dto.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, output.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	snap, err := dto.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", s.path, err)
	}
	s.logger.Debug("read %d bytes from %s", len(data), s.path)
	return snap, nil
}

// Save replaces the file atomically
func (s *StateStore) Save(ctx context.Context, snap *dto.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := snap.Encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := WriteFileAtomic(s.fs, s.path, data, statePerm); err != nil {
		return err
	}
	s.logger.Debug("wrote %d bytes to %s", len(data), s.path)
	return nil
}

// Close is a no-op; the file is not held open
func (s *StateStore) Close() error {
	return nil
}
