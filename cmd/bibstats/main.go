// bibstats computes citation statistics for a writing project:
// one bibliography file, a set of document files, counts per work.
package main

import (
	"os"

	"github.com/corey/bibstats/cmd/bibstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
