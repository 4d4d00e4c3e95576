package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/wingup/internal/output"
	"github.com/blackwell-systems/wingup/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyRun   int64

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show past update runs",
		Long: `List recorded update runs, newest first. Each run shows whether it was
a bulk or per-package run and how many of the requested updates
succeeded. Use --run to see the per-package outcomes of one run.

Bulk runs have no per-package outcomes: a single winget invocation
covers the whole batch.`,
		Example: `  # Recent update runs
  wingup history

  # More of them
  wingup history --limit 50

  # Per-package outcomes of run 3
  wingup history --run 3`,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")
	historyCmd.Flags().Int64Var(&historyRun, "run", 0, "show per-package outcomes for this run id")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if historyRun > 0 {
		results, err := db.ListUpdateResults(historyRun)
		if err != nil {
			return err
		}
		fmt.Print(output.RenderResultTable(results))
		return nil
	}

	runs, err := db.ListUpdateRuns(historyLimit)
	if err != nil {
		return err
	}
	fmt.Print(output.RenderRunTable(runs))
	return nil
}

// openHistoryStore opens the database without creating the schema, so a
// never-scanned database surfaces ErrNotInitialized instead of showing an
// empty history.
func openHistoryStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Probe so the not-initialized case fails here with the remedy.
	if _, err := db.ListUpdateRuns(1); err != nil {
		db.Close()
		if errors.Is(err, store.ErrNotInitialized) {
			return nil, store.ErrNotInitialized
		}
		return nil, err
	}

	return db, nil
}
