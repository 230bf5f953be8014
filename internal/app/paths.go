package app

import (
	"os"
	"path/filepath"
)

// Paths holds the resolved filesystem paths for the .bibstats/ project
// directory. All fields are pre-computed strings.
type Paths struct {
	Root string // .bibstats/
	DB   string // .bibstats/bibstats.db
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".bibstats")
	return &Paths{
		Root: root,
		DB:   filepath.Join(root, "bibstats.db"),
	}
}

// EnsureDirs creates the .bibstats/ directory. Idempotent.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.Root, 0755)
}
