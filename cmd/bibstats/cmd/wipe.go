package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/bibstats/internal/adapters/bbolt"
	"github.com/corey/bibstats/internal/app"
	"github.com/spf13/cobra"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Clear the cached bibliography parses for this project",
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	root := projectRoot()

	if !wipeForce {
		fmt.Printf("This will delete the bibstats cache for %s. Continue? [y/N] ", filepath.Base(root))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	paths := app.NewPaths(root)
	if _, err := os.Stat(paths.DB); os.IsNotExist(err) {
		fmt.Println("no cache to wipe")
		return nil
	}

	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%s", dbLockHint())
		}
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	if err := store.Wipe(); err != nil {
		return err
	}
	fmt.Println("cache wiped")
	return nil
}
