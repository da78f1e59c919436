package output

import (
	"context"
	"errors"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
)

// StateKey is the key under which the trial log snapshot is stored
const StateKey = "potionResearchData"

// ErrNoState is returned by Load when nothing has been saved yet
var ErrNoState = errors.New("no saved state")

// StateStore persists the trial log snapshot under a single key.
// Only the log is stored; the candidate set is recomputed on load.
type StateStore interface {
	// Load returns the last saved snapshot or ErrNoState
	Load(ctx context.Context) (*dto.Snapshot, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, snap *dto.Snapshot) error

	// Close releases the underlying resources
	Close() error
}
