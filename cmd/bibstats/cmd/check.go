package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every cited key exists in the bibliography",
	Long:  "Exits non-zero when any \\cite references a key the bibliography does not define.",
	RunE:  runCheck,
}

func init() {
	addInputFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	missing, err := a.Unresolved(runConfig())
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		fmt.Fprintln(a.Stdout, "all citations resolve")
		return nil
	}
	for _, key := range missing {
		fmt.Fprintf(a.Stdout, "unresolved: %s\n", key)
	}
	return fmt.Errorf("%d unresolved citekey(s)", len(missing))
}
