package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	fsw "github.com/corey/bibstats/internal/adapters/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute the report whenever a document or the bibliography changes",
	RunE:  runWatch,
}

func init() {
	addInputFlags(watchCmd)
	addOutputFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := runConfig()
	if len(cfg.Files) == 0 && len(cfg.Dirs) == 0 {
		cfg.Dirs = []string{a.ProjectRoot}
	}

	rerun := func() {
		if err := a.Run(cfg); err != nil {
			fmt.Fprintf(a.Stderr, "error: %v\n", err)
		}
	}
	rerun()

	// Watch document extensions plus the bibliography itself.
	exts := append(cfg.ExtsOrDefault(), "bib")
	w, err := fsw.NewWatcher(exts)
	if err != nil {
		return err
	}
	defer w.Stop()

	changed := make(chan string, 16)
	if err := w.Watch(a.ProjectRoot, func(path string) { changed <- path }); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintln(a.Stderr, "watching for changes (ctrl-c to stop)")
	for {
		select {
		case path := <-changed:
			fmt.Fprintf(a.Stderr, "changed: %s\n", path)
			rerun()
		case <-stop:
			return nil
		}
	}
}
