package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report citation counts per author and title",
	Long: "Parses the bibliography, scans the documents for \\cite commands, and writes\n" +
		"one row per cited work. With no --file and no --dir, document text is read\n" +
		"from stdin.",
	RunE: runStats,
}

func init() {
	addInputFlags(statsCmd)
	addOutputFlags(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	return a.Run(runConfig())
}
