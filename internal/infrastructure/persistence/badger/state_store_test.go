package badger

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

func sampleSnapshot() *dto.Snapshot {
	return dto.NewSnapshot([]trial.Trial{
		{ID: "h1", Kind: trial.KindHint, Combo: combo.New("Iron", "Heart", "Sage"), Label: "Tonic"},
		{ID: "p1", Kind: trial.KindPending, Combo: combo.New("Gold", "Liver", "Rue")},
	})
}

func TestStateStoreInMemory(t *testing.T) {
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, output.ErrNoState)

	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestStateStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	require.NoError(t, store.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestStateStoreCorruptValue(t *testing.T) {
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(output.StateKey), []byte("[]"))
	}))
	_, err = store.Load(context.Background())
	assert.True(t, dto.IsImport(err))
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}
