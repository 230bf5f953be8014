package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version, overridable at link time with
// -ldflags "-X github.com/corey/bibstats/cmd/bibstats/cmd.Version=...".
var Version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bibstats version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}
