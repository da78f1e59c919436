package file

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

func TestStateStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStateStore(fs, "/home/var/state.json", nil)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, output.ErrNoState)

	snap := dto.NewSnapshot([]trial.Trial{
		{ID: "a", Kind: trial.KindHint, Combo: combo.New("Iron", "Heart", "Sage"), Label: "Tonic"},
		{ID: "b", Kind: trial.KindPending, Combo: combo.New("Gold", "Heart", "Sage")},
	})
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
	require.NoError(t, store.Close())
}

func TestStateStoreCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/state.json", []byte("garbage"), 0o600))

	_, err := NewStateStore(fs, "/state.json", nil).Load(context.Background())
	require.Error(t, err)
	assert.True(t, dto.IsImport(err))
}

func TestStateStoreHonoursCancelledContext(t *testing.T) {
	store := NewStateStore(afero.NewMemMapFs(), "/state.json", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, dto.NewSnapshot(nil)), context.Canceled)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
