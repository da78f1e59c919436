package di

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
	appconfig "github.com/YoshitsuguKoike/potionlab/internal/app/config"
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
)

const smallCatalog = `
metals: [Iron, Gold]
organs: [Heart]
herbs:
  - {name: Sage, season1: spring}
`

func testConfig(home string, mutate func(v *appconfig.Values)) appconfig.Config {
	paths := app.PathsFor(home)
	v := appconfig.Values{
		Home:        home,
		Store:       "file",
		StatePath:   paths.State,
		DBPath:      paths.DB,
		BadgerDir:   paths.Badger,
		Backup:      "file",
		BackupDir:   paths.Backups,
		S3Prefix:    "potionlab",
		Output:      "text",
		StderrLevel: "warn",
	}
	if mutate != nil {
		mutate(&v)
	}
	return appconfig.NewAppConfig(v, "default", "")
}

func newTestContainer(t *testing.T, fs afero.Fs, cfg appconfig.Config) (*Container, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	c, err := NewContainer(context.Background(), Config{
		App:          cfg,
		Fs:           fs,
		OutputWriter: out,
		Logger:       app.NopLogger{},
		IDs:          &trial.SequenceGenerator{Prefix: "t"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, out
}

func TestContainer_FileStorePersistsAcrossContainers(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig("/home/.potionlab", nil)

	first, _ := newTestContainer(t, fs, cfg)
	_, err := first.UseCase().Commit(context.Background(), dto.CommitRequest{
		Kind: "failure", Metal: "Iron", Organ: "Heart", Herb: "Sage",
	})
	require.NoError(t, err)

	exists, err := afero.Exists(fs, cfg.StatePath())
	require.NoError(t, err)
	assert.True(t, exists)

	second, _ := newTestContainer(t, fs, cfg)
	assert.Equal(t, 1, second.UseCase().Stats().Failures)
}

func TestContainer_CatalogFromHome(t *testing.T) {
	fs := afero.NewMemMapFs()
	home := "/home/.potionlab"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(home, "catalog.yaml"), []byte(smallCatalog), 0o644))

	c, _ := newTestContainer(t, fs, testConfig(home, nil))
	assert.Equal(t, []string{"Iron", "Gold"}, c.Catalog().Metals)
	assert.Equal(t, 2, c.UseCase().Stats().Universe)
}

func TestContainer_CatalogPathSetting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/cat.yaml", []byte(smallCatalog), 0o644))

	c, _ := newTestContainer(t, fs, testConfig("/home/.potionlab", func(v *appconfig.Values) {
		v.CatalogPath = "/etc/cat.yaml"
	}))
	assert.Equal(t, []string{"Heart"}, c.Catalog().Organs)
}

func TestContainer_DefaultCatalog(t *testing.T) {
	c, _ := newTestContainer(t, afero.NewMemMapFs(), testConfig("/home/.potionlab", nil))
	assert.NotEmpty(t, c.Catalog().Herbs)
	assert.NotNil(t, c.Palette())
}

func TestContainer_OutputFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	c, err := NewContainer(context.Background(), Config{
		App:          testConfig("/home/.potionlab", nil),
		Fs:           fs,
		OutputFormat: "json",
		OutputWriter: out,
		Logger:       app.NopLogger{},
	})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Presenter().PresentStats(c.UseCase().Stats()))
	assert.Contains(t, out.String(), `"success":true`)
}

func TestContainer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"missing app config", Config{}},
		{"unknown store", Config{App: testConfig("/h", func(v *appconfig.Values) { v.Store = "tape" })}},
		{"unknown output", Config{App: testConfig("/h", nil), OutputFormat: "xml"}},
		{"bad precedence", Config{App: testConfig("/h", func(v *appconfig.Values) { v.MatrixPrecedence = []string{"sparkle"} })}},
		{"missing catalog", Config{App: testConfig("/h", func(v *appconfig.Values) { v.CatalogPath = "/nope.yaml" })}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Fs = afero.NewMemMapFs()
			tt.config.Logger = app.NopLogger{}
			tt.config.OutputWriter = &bytes.Buffer{}
			_, err := NewContainer(context.Background(), tt.config)
			assert.Error(t, err)
		})
	}
}

func TestContainer_SQLiteStore(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, func(v *appconfig.Values) {
		v.Store = "sqlite"
		v.DBPath = filepath.Join(dir, "var", "potionlab.db")
	})

	first, _ := newTestContainer(t, afero.NewMemMapFs(), cfg)
	_, err := first.UseCase().Commit(context.Background(), dto.CommitRequest{
		Kind: "success", Metal: "Iron", Organ: "Heart", Herb: "Sage", Label: "Vigor",
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, _ := newTestContainer(t, afero.NewMemMapFs(), cfg)
	assert.Equal(t, 1, second.UseCase().Stats().Successes)
}

func TestContainer_BadgerStore(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, func(v *appconfig.Values) {
		v.Store = "badger"
		v.BadgerDir = filepath.Join(dir, "badger")
	})

	first, _ := newTestContainer(t, afero.NewMemMapFs(), cfg)
	_, err := first.UseCase().Commit(context.Background(), dto.CommitRequest{
		Kind: "pending", Metal: "Iron", Organ: "Heart", Herb: "Sage",
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, _ := newTestContainer(t, afero.NewMemMapFs(), cfg)
	assert.Equal(t, 1, second.UseCase().Stats().Pending)
}

func TestContainer_BackupGateway(t *testing.T) {
	c, _ := newTestContainer(t, afero.NewMemMapFs(), testConfig("/home/.potionlab", nil))
	ctx := context.Background()

	gw, err := c.BackupGateway(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "file", gw.Name())

	gw, err = c.BackupGateway(ctx, "clipboard")
	require.NoError(t, err)
	assert.Equal(t, "clipboard", gw.Name())

	_, err = c.BackupGateway(ctx, "s3")
	assert.Error(t, err, "s3 requires a bucket")

	_, err = c.BackupGateway(ctx, "pigeon")
	assert.Error(t, err)
}

func TestContainer_BackupRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	c, _ := newTestContainer(t, fs, testConfig("/home/.potionlab", nil))
	ctx := context.Background()

	_, err := c.UseCase().Commit(ctx, dto.CommitRequest{Kind: "hint", Metal: "Iron", Organ: "Heart", Herb: "Sage", Label: "Near"})
	require.NoError(t, err)

	gw, err := c.BackupGateway(ctx, "file")
	require.NoError(t, err)
	ref, err := c.UseCase().ExportTo(ctx, gw)
	require.NoError(t, err)
	assert.Contains(t, ref, "/home/.potionlab/backups/")

	other, _ := newTestContainer(t, afero.NewMemMapFs(), testConfig("/other", nil))
	n, err := other.UseCase().ImportFrom(ctx, gw, ref)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMatrixPolicy(t *testing.T) {
	p, err := MatrixPolicy(nil)
	require.NoError(t, err)
	assert.Equal(t, projection.DefaultPolicy(), p)

	p, err = MatrixPolicy([]string{"pending", "success"})
	require.NoError(t, err)
	assert.Equal(t, []projection.CellState{projection.CellPending, projection.CellSuccess}, p.Precedence)

	_, err = MatrixPolicy([]string{"bogus"})
	assert.Error(t, err)
}
