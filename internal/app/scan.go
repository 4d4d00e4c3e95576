package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/wingup/internal/output"
	"github.com/blackwell-systems/wingup/internal/winget"
	"github.com/spf13/cobra"
)

var (
	scanQuiet  bool
	scanFilter string

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan and index installed packages",
		Long: `Scan all packages installed through winget and store the inventory in
the wingup database.

The scan command should be run:
  • After installing wingup for the first time
  • After installing or removing packages manually with winget
  • Periodically to keep the database in sync`,
		Example: `  # Scan all packages
  wingup scan

  # Scan and show only matching packages
  wingup scan --filter git

  # Scan quietly (suppress output)
  wingup scan --quiet`,
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "suppress output")
	scanCmd.Flags().StringVar(&scanFilter, "filter", "", "only display packages whose name or id contains this substring")
}

func runScan(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	eng, _ := newEngine(db)
	defer eng.Close()

	var spinner *output.Spinner
	if !scanQuiet {
		spinner = output.NewSpinner("Scanning installed packages...")
		spinner.Start()
	}

	res, err := eng.ScanWait()
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return err
	}
	if res.Err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return fmt.Errorf("scan failed: %w", res.Err)
	}

	if scanQuiet {
		return nil
	}

	records := filterRecords(res.Records, scanFilter)
	spinner.StopWithMessage(fmt.Sprintf("✓ Scan complete: %d packages found", len(res.Records)))
	fmt.Println()
	fmt.Print(output.RenderPackageTable(records))

	if scanFilter != "" && len(records) < len(res.Records) {
		fmt.Printf("\n%d of %d packages match %q\n", len(records), len(res.Records), scanFilter)
	}

	return nil
}

// filterRecords returns the records whose name or id contains the filter
// substring, case-insensitively. An empty filter keeps everything.
func filterRecords(records []*winget.PackageRecord, filter string) []*winget.PackageRecord {
	if filter == "" {
		return records
	}
	needle := strings.ToLower(filter)
	var out []*winget.PackageRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), needle) ||
			strings.Contains(strings.ToLower(rec.ID), needle) {
			out = append(out, rec)
		}
	}
	return out
}
