package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileGatewayExportImport(t *testing.T) {
	fs := afero.NewMemMapFs()
	gw := NewFileGateway(fs, "/lab/backups")
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	gw.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	ctx := context.Background()
	assert.Equal(t, "file", gw.Name())

	_, err := gw.Import(ctx, "")
	assert.ErrorIs(t, err, ErrNoBackup)

	first, err := gw.Export(ctx, []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, "/lab/backups/potionlab-20240301T120001.000000000Z.json", first)
	_, err = gw.Export(ctx, []byte("two"))
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/lab/backups/zzz-notes.json", []byte("x"), 0o644))

	data, err := gw.Import(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	data, err = gw.Import(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	data, err = gw.Import(ctx, filepath.Base(first))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	_, err = gw.Import(ctx, "nope.json")
	assert.Error(t, err)
}

func TestFileGatewayEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/lab/backups", 0o755))
	_, err := NewFileGateway(fs, "/lab/backups").Import(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoBackup)
}
