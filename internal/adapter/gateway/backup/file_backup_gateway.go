// Package backup moves exported trial logs to and from external media.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/infra/persistence/file"
)

const (
	backupPrefix     = "potionlab-"
	backupSuffix     = ".json"
	backupTimeLayout = "20060102T150405.000000000Z"
)

// FileGateway writes timestamped backup files into a directory
type FileGateway struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

var _ output.BackupGateway = (*FileGateway)(nil)

// NewFileGateway creates a gateway writing into dir
func NewFileGateway(fs afero.Fs, dir string) *FileGateway {
	return &FileGateway{fs: fs, dir: dir, now: time.Now}
}

// Name identifies the medium
func (g *FileGateway) Name() string {
	return "file"
}

// Export writes data to a new file and returns its path
func (g *FileGateway) Export(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := backupPrefix + g.now().UTC().Format(backupTimeLayout) + backupSuffix
	p := filepath.Join(g.dir, name)
	if err := file.WriteFileAtomic(g.fs, p, data, 0o600); err != nil {
		return "", err
	}
	return p, nil
}

// Import reads a backup. ref is a path, or a file name inside the backup
// directory; empty selects the newest backup.
func (g *FileGateway) Import(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := ref
	switch {
	case ref == "":
		latest, err := g.latest()
		if err != nil {
			return nil, err
		}
		p = latest
	case !strings.ContainsRune(ref, filepath.Separator) && !strings.Contains(ref, "/"):
		p = filepath.Join(g.dir, ref)
	}

	data, err := afero.ReadFile(g.fs, p)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", p, err)
	}
	return data, nil
}

func (g *FileGateway) latest() (string, error) {
	entries, err := afero.ReadDir(g.fs, g.dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w in %s", ErrNoBackup, g.dir)
	}
	if err != nil {
		return "", fmt.Errorf("list %s: %w", g.dir, err)
	}
	latest := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoBackup, g.dir)
	}
	return filepath.Join(g.dir, latest), nil
}
