// Package fswalk discovers the bibliography file and collects document
// files from the project tree.
package fswalk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindBibFile returns the first file with a .bib extension found in dir
// (non-recursive). Used when no bibliography is named on the command line.
func FindBibFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".bib") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no bib file found in %s", dir)
}

// Collect returns the explicitly named files plus every file under the
// given directories (recursive) whose extension is in exts. Extensions
// are compared without the leading dot, case-insensitively.
func Collect(files, dirs, exts []string) ([]string, error) {
	out := append([]string(nil), files...)

	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip inaccessible paths
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
			if extSet[ext] {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return out, nil
}
