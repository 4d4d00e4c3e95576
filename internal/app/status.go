package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/wingup/internal/output"
	"github.com/blackwell-systems/wingup/internal/store"
	"github.com/blackwell-systems/wingup/internal/watcher"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and daemon status",
	Long: `Show an overview of the wingup state: where the database lives, when
the last scan ran, how many packages it found, and whether the watch
daemon is running.`,
	Example: `  wingup status`,
	RunE:    runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}

	fmt.Println("wingup status")
	fmt.Println()
	fmt.Printf("  Database:  %s\n", path)

	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	last, err := db.LastScan()
	switch {
	case errors.Is(err, store.ErrNotInitialized):
		fmt.Println("  Last scan: never (run 'wingup scan')")
	case err != nil:
		return err
	case last == nil:
		fmt.Println("  Last scan: never (run 'wingup scan')")
	default:
		fmt.Printf("  Last scan: %s (%d packages, %d updates)\n",
			output.FormatRelativeTime(last.CompletedAt), last.PackageCount, last.UpdateCount)
	}

	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return err
	}
	running, err := watcher.IsDaemonRunning(pidFile)
	if err != nil {
		return err
	}
	if running {
		fmt.Println("  Daemon:    running")
	} else {
		fmt.Println("  Daemon:    not running (run 'wingup watch --daemon')")
	}

	return nil
}
