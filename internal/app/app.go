// Package app wires the parsers, the tally, and the adapters together
// behind the operations the CLI commands perform.
package app

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/corey/bibstats/internal/adapters/fswalk"
	"github.com/corey/bibstats/internal/domain/bib"
	"github.com/corey/bibstats/internal/domain/cite"
	"github.com/corey/bibstats/internal/domain/stats"
	"github.com/corey/bibstats/internal/ports"
	"github.com/corey/bibstats/internal/textscan"
)

// DefaultExt is the document extension assumed when none is given.
const DefaultExt = "tex"

// Config is one run's worth of options, assembled by the CLI layer.
type Config struct {
	Bib    string   // bibliography path; discovered in the project root when empty
	Files  []string // explicit document files
	Dirs   []string // directories scanned recursively for documents
	Exts   []string // extensions used with Dirs; DefaultExt when empty
	Format stats.Format
}

// ExtsOrDefault returns the configured extensions, falling back to the default.
func (c *Config) ExtsOrDefault() []string {
	if len(c.Exts) == 0 {
		return []string{DefaultExt}
	}
	return c.Exts
}

// App carries the shared collaborators of every command.
type App struct {
	ProjectRoot string
	Cache       ports.EntryCache // nil disables caching

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an App rooted at projectRoot talking to the standard streams.
func New(projectRoot string) *App {
	return &App{
		ProjectRoot: projectRoot,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// ResolveBib returns the bibliography path: the configured one, or the
// first .bib file in the project root.
func (a *App) ResolveBib(cfg *Config) (string, error) {
	if cfg.Bib != "" {
		return cfg.Bib, nil
	}
	return fswalk.FindBibFile(a.ProjectRoot)
}

// LoadEntries parses the bibliography, consulting the cache first. A
// cache miss parses the file and stores the result; cache write failures
// are not fatal (the parse already succeeded).
func (a *App) LoadEntries(bibPath string) ([]bib.Entry, error) {
	fp, err := fingerprint(bibPath)
	if err != nil {
		return nil, err
	}

	if a.Cache != nil {
		if entries, ok, err := a.Cache.Load(bibPath, fp); err != nil {
			return nil, fmt.Errorf("bib cache: %w", err)
		} else if ok {
			return entries, nil
		}
	}

	entries, err := parseBibFile(bibPath)
	if err != nil {
		return nil, err
	}

	if a.Cache != nil {
		if err := a.Cache.Save(bibPath, fp, entries); err != nil {
			fmt.Fprintf(a.Stderr, "warning: bib cache write failed: %v\n", err)
		}
	}
	return entries, nil
}

// Run computes and writes the citation report. Unresolved citekeys warn
// to stderr per occurrence and processing continues; a structural parse
// error in the bibliography or any document aborts the run.
func (a *App) Run(cfg *Config) error {
	lib, err := a.library(cfg)
	if err != nil {
		return err
	}

	keys, err := a.collectKeys(cfg)
	if err != nil {
		return err
	}

	tally := stats.NewTally()
	for _, key := range keys {
		if !tally.CountUp(key, lib) {
			fmt.Fprintf(a.Stderr, "citekey %q not in database\n", key)
		}
	}
	return stats.Write(a.Stdout, tally.Rows(), cfg.Format)
}

// Unresolved returns the sorted, de-duplicated citekeys that do not
// resolve against the bibliography. Backs the check command.
func (a *App) Unresolved(cfg *Config) ([]string, error) {
	lib, err := a.library(cfg)
	if err != nil {
		return nil, err
	}
	keys, err := a.collectKeys(cfg)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var missing []string
	for _, key := range keys {
		if _, ok := lib[key]; ok || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, key)
	}
	sort.Strings(missing)
	return missing, nil
}

func (a *App) library(cfg *Config) (stats.Library, error) {
	bibPath, err := a.ResolveBib(cfg)
	if err != nil {
		return nil, err
	}
	entries, err := a.LoadEntries(bibPath)
	if err != nil {
		return nil, err
	}
	return stats.NewLibrary(entries), nil
}

// collectKeys scans every document for citekeys, in input order. With no
// files and no dirs configured, document text comes from stdin.
func (a *App) collectKeys(cfg *Config) ([]string, error) {
	if len(cfg.Files) == 0 && len(cfg.Dirs) == 0 {
		c, err := textscan.FromReader(a.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		keys, err := cite.Scan(c)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return keys, nil
	}

	files, err := fswalk.Collect(cfg.Files, cfg.Dirs, cfg.ExtsOrDefault())
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, file := range files {
		ks, err := scanDocFile(file)
		if err != nil {
			return nil, err
		}
		keys = append(keys, ks...)
	}
	return keys, nil
}

func parseBibFile(path string) ([]bib.Entry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := bib.Parse(textscan.New(src))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return entries, nil
}

func scanDocFile(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	keys, err := cite.Scan(textscan.New(src))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return keys, nil
}

func fingerprint(path string) (ports.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.Fingerprint{}, err
	}
	return ports.Fingerprint{Size: info.Size(), ModTime: info.ModTime().Unix()}, nil
}
