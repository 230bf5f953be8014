package cmd

import (
	"fmt"

	"github.com/corey/bibstats/internal/adapters/bbolt"
	"github.com/corey/bibstats/internal/app"
	"github.com/corey/bibstats/internal/domain/stats"
	"github.com/spf13/cobra"
)

// Input flags shared by stats, entries, check, and watch.
var (
	flagBib   string
	flagFiles []string
	flagDirs  []string
	flagExts  []string
)

// Output flags for stats and watch.
var (
	flagTSV       bool
	flagJSONArray bool
	flagNoCache   bool
)

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagBib, "bib", "b", "", "Bibliography file (default: first .bib in the project root)")
	c.Flags().StringArrayVarP(&flagFiles, "file", "f", nil, "Document file to examine (repeatable)")
	c.Flags().StringArrayVarP(&flagDirs, "dir", "d", nil, "Directory searched recursively for documents (repeatable)")
	c.Flags().StringArrayVarP(&flagExts, "ext", "e", nil, "Extension considered with --dir (repeatable, default tex)")
	c.Flags().BoolVar(&flagNoCache, "no-cache", false, "Parse the bibliography without the .bibstats cache")
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&flagTSV, "tsv", "t", false, "Write tab-separated values instead of JSON")
	c.Flags().BoolVarP(&flagJSONArray, "json-array", "a", false, "Write one JSON array instead of a stream of objects")
}

// runConfig assembles the app.Config from the parsed flags.
func runConfig() *app.Config {
	format := stats.JSONStream
	if flagJSONArray {
		format = stats.JSONArray
	}
	if flagTSV {
		format = stats.TSV
	}
	return &app.Config{
		Bib:    flagBib,
		Files:  flagFiles,
		Dirs:   flagDirs,
		Exts:   flagExts,
		Format: format,
	}
}

// newApp builds the App for the project root, opening the cache unless
// disabled. The returned cleanup closes the cache.
func newApp() (*app.App, func(), error) {
	a := app.New(projectRoot())
	cleanup := func() {}

	if !flagNoCache {
		paths := app.NewPaths(a.ProjectRoot)
		if err := paths.EnsureDirs(); err != nil {
			return nil, nil, err
		}
		store, err := bbolt.NewStore(paths.DB)
		if err != nil {
			if isDBLockError(err) {
				return nil, nil, fmt.Errorf("%s", dbLockHint())
			}
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		a.Cache = store
		cleanup = func() { store.Close() }
	}
	return a, cleanup, nil
}
