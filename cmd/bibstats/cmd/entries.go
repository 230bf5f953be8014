package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List the parsed bibliography entries",
	RunE:  runEntries,
}

func init() {
	addInputFlags(entriesCmd)
}

func runEntries(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	bibPath, err := a.ResolveBib(runConfig())
	if err != nil {
		return err
	}
	entries, err := a.LoadEntries(bibPath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(a.Stdout, "%s\t%s (%s): %s\n", e.Key, e.Author, e.Date, e.Title)
	}
	return nil
}
