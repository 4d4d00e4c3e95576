package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/wingup/internal/engine"
	"github.com/blackwell-systems/wingup/internal/output"
	"github.com/blackwell-systems/wingup/internal/winget"
	"github.com/spf13/cobra"
)

var (
	updateAll bool

	updateCmd = &cobra.Command{
		Use:   "update [package-id...]",
		Short: "Apply pending package updates",
		Long: `Update the named packages, or everything updatable with --all.

Explicit ids are updated one invocation at a time; a failing package
does not stop the remaining ones. With --all a single bulk invocation
covers every package the check marked updatable, so per-package
outcomes are not available in that mode.

After the updates run, the inventory is rescanned so the recorded
versions reflect what is actually installed.`,
		Example: `  # Update specific packages
  wingup update Git.Git 7zip.7zip

  # Update everything updatable
  wingup update --all`,
		RunE: runUpdate,
	}
)

func init() {
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "update every package with a pending update")
}

// updateProgress renders a progress bar from the engine's per-item events.
// Only sequential updates produce those events; bulk mode draws nothing.
type updateProgress struct {
	bar *output.ProgressBar
}

func (p *updateProgress) ScanCompleted([]*winget.PackageRecord) {}
func (p *updateProgress) UpdatesFound([]*winget.PackageRecord)  {}
func (p *updateProgress) SessionSummary(int, int, int)          {}

func (p *updateProgress) UpdateStarted(ids []string, bulk bool) {
	if !bulk {
		p.bar = output.NewProgress(len(ids), "Updating packages")
	}
}

func (p *updateProgress) UpdateResult(id string, success bool, errText string) {
	if p.bar != nil {
		p.bar.Increment()
	}
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if !updateAll && len(args) == 0 {
		return fmt.Errorf("nothing to update: name package ids or pass --all")
	}
	if updateAll && len(args) > 0 {
		return fmt.Errorf("--all cannot be combined with explicit package ids")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	progress := &updateProgress{}
	eng, audit := newEngine(db, progress)
	defer eng.Close()

	// Reconcile first so --all knows what is updatable.
	if _, err := checkWithSpinner(eng); err != nil {
		return err
	}

	var summary engine.UpdateSummary
	if updateAll {
		summary, err = eng.UpdateAllWait()
		if errors.Is(err, engine.ErrNothingToUpdate) {
			fmt.Println("\nEverything is up to date.")
			return nil
		}
	} else {
		summary, err = eng.UpdateWait(args)
	}
	if err != nil {
		return err
	}
	if progress.bar != nil {
		progress.bar.Finish()
	}

	audit.FinishRun(summary.Succeeded)

	if summary.Err != nil {
		return fmt.Errorf("update run failed: %w", summary.Err)
	}

	fmt.Println()
	if summary.Bulk {
		if summary.ErrText != "" {
			fmt.Printf("✗ Bulk update failed: %s\n", summary.ErrText)
		} else {
			fmt.Printf("✓ Updated %d packages\n", summary.Succeeded)
		}
	} else {
		for _, outcome := range summary.Outcomes {
			if outcome.Success {
				fmt.Printf("  ✓ %s\n", outcome.ID)
			} else {
				fmt.Printf("  ✗ %s: %s\n", outcome.ID, outcome.ErrText)
			}
		}
		fmt.Printf("\n%d of %d packages updated\n", summary.Succeeded, len(summary.Requested))
	}

	if summary.Records != nil {
		remaining := 0
		for _, rec := range summary.Records {
			if rec.HasUpdate() {
				remaining++
			}
		}
		if remaining > 0 {
			fmt.Printf("%d packages still have pending updates.\n", remaining)
		}
	}

	return nil
}
