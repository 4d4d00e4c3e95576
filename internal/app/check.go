package app

import (
	"fmt"

	"github.com/blackwell-systems/wingup/internal/engine"
	"github.com/blackwell-systems/wingup/internal/output"
	"github.com/blackwell-systems/wingup/internal/winget"
	"github.com/spf13/cobra"
)

var (
	checkUpdatesOnly bool

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check which installed packages have updates",
		Long: `Scan the installed packages, then reconcile the winget upgrade listing
against the inventory to determine which packages can be updated.

A package whose id or name does not appear in the upgrade listing keeps
its installed version as the available version, which reports it as up
to date rather than unknown.`,
		Example: `  # Full inventory with update status
  wingup check

  # Only the packages with pending updates
  wingup check --updates-only`,
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().BoolVar(&checkUpdatesOnly, "updates-only", false, "only display packages with a pending update")
}

func runCheck(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	eng, _ := newEngine(db)
	defer eng.Close()

	res, err := checkWithSpinner(eng)
	if err != nil {
		return err
	}

	records := res.Records
	if checkUpdatesOnly {
		records = updatableRecords(records)
	}

	fmt.Println()
	fmt.Print(output.RenderPackageTable(records))

	if res.UpdateCount == 0 {
		fmt.Println("\nEverything is up to date.")
	} else {
		fmt.Printf("\n%d of %d packages can be updated. Run 'wingup update --all' to apply.\n",
			res.UpdateCount, len(res.Records))
	}

	return nil
}

// checkWithSpinner runs the scan and check cycles back to back with
// progress feedback. The scan has to come first so the reconciliation has
// an inventory to resolve against.
func checkWithSpinner(eng *engine.Engine) (engine.CheckResult, error) {
	spinner := output.NewSpinner("Scanning installed packages...")
	spinner.Start()

	scanRes, err := eng.ScanWait()
	if err != nil {
		spinner.Stop()
		return engine.CheckResult{}, err
	}
	if scanRes.Err != nil {
		spinner.Stop()
		return engine.CheckResult{}, fmt.Errorf("scan failed: %w", scanRes.Err)
	}

	spinner.StopWithMessage(fmt.Sprintf("✓ %d packages scanned", len(scanRes.Records)))

	spinner = output.NewSpinner("Checking for updates...")
	spinner.Start()

	checkRes, err := eng.CheckWait()
	if err != nil {
		spinner.Stop()
		return engine.CheckResult{}, err
	}
	if checkRes.Err != nil {
		spinner.Stop()
		return engine.CheckResult{}, fmt.Errorf("update check failed: %w", checkRes.Err)
	}

	if checkRes.UpdateCount == 0 {
		spinner.StopWithMessage("✓ No updates available")
	} else {
		spinner.StopWithMessage(fmt.Sprintf("✓ %d updates available", checkRes.UpdateCount))
	}

	return checkRes, nil
}

// updatableRecords keeps only the records with a pending update.
func updatableRecords(records []*winget.PackageRecord) []*winget.PackageRecord {
	var out []*winget.PackageRecord
	for _, rec := range records {
		if rec.HasUpdate() {
			out = append(out, rec)
		}
	}
	return out
}
