package app

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the base directory
const HomeEnv = "POTIONLAB_HOME"

// DefaultHome is the base directory when HomeEnv is unset
const DefaultHome = ".potionlab"

// Paths holds all resolved paths below the base directory
type Paths struct {
	Home    string // .potionlab
	Var     string // .potionlab/var
	Backups string // .potionlab/backups

	// Key files
	Setting string // .potionlab/setting.json
	Catalog string // .potionlab/catalog.yaml
	State   string // .potionlab/var/state.json
	DB      string // .potionlab/var/potionlab.db
	Badger  string // .potionlab/var/badger
}

// ResolvePaths returns all paths based on the POTIONLAB_HOME environment variable
func ResolvePaths() Paths {
	home := os.Getenv(HomeEnv)
	if home == "" {
		home = DefaultHome
	}
	return PathsFor(home)
}

// PathsFor derives every path from home
func PathsFor(home string) Paths {
	p := Paths{
		Home:    home,
		Var:     filepath.Join(home, "var"),
		Backups: filepath.Join(home, "backups"),
	}

	p.Setting = filepath.Join(home, "setting.json")
	p.Catalog = filepath.Join(home, "catalog.yaml")
	p.State = filepath.Join(p.Var, "state.json")
	p.DB = filepath.Join(p.Var, "potionlab.db")
	p.Badger = filepath.Join(p.Var, "badger")

	return p
}
