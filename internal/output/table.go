// Package output provides terminal output utilities for wingup.
//
// This package includes:
//   - Table rendering functions for package inventory, update runs, and run results
//   - Progress bars for long-running operations
//   - Spinners for indeterminate operations
//
// All table rendering functions use ASCII characters and ANSI color codes for terminal output.
// Progress indicators are thread-safe and can be used from multiple goroutines.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/wingup/internal/store"
	"github.com/blackwell-systems/wingup/internal/winget"
)

// ANSI color codes for status display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderPackageTable renders a table of package records sorted by name.
func RenderPackageTable(records []*winget.PackageRecord) string {
	if len(records) == 0 {
		return "No packages found.\n"
	}

	sorted := make([]*winget.PackageRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-28s %-28s %-14s %-14s %s\n",
		"Package", "Id", "Installed", "Available", "Status"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, rec := range sorted {
		available := rec.AvailableVersion
		if available == "" {
			available = "—"
		}

		label, color := statusLabel(rec.Status())
		sb.WriteString(fmt.Sprintf("%-28s %-28s %-14s %-14s %s\n",
			truncate(rec.Name, 28),
			truncate(rec.ID, 28),
			truncate(rec.InstalledVersion, 14),
			truncate(available, 14),
			colorize(color, label)))
	}

	return sb.String()
}

// statusLabel maps a record status to its table label and color.
func statusLabel(status string) (string, string) {
	switch status {
	case winget.StatusUpdate:
		return "update", colorYellow
	case winget.StatusUpToDate:
		return "up to date", colorGreen
	default:
		return "unknown", colorGray
	}
}

// RenderRunTable renders a table of update runs, newest first.
func RenderRunTable(runs []*store.UpdateRun) string {
	if len(runs) == 0 {
		return "No update runs recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-17s %-6s %-10s %-10s %s\n",
		"Run", "Started", "Mode", "Requested", "Succeeded", "State"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, run := range runs {
		mode := "item"
		if run.Bulk {
			mode = "bulk"
		}
		state := "running"
		if run.Finished {
			state = "done"
			if run.Succeeded < run.Requested {
				state = "partial"
			}
		}

		sb.WriteString(fmt.Sprintf("%-5d %-17s %-6s %-10d %-10d %s\n",
			run.ID,
			FormatRelativeTime(run.StartedAt),
			mode,
			run.Requested,
			run.Succeeded,
			state))
	}

	return sb.String()
}

// RenderResultTable renders the per-item outcomes of one update run.
func RenderResultTable(results []*store.UpdateResult) string {
	if len(results) == 0 {
		return "No per-item results for this run.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-32s %-8s %s\n", "Id", "Result", "Error"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, res := range results {
		var outcome string
		if res.Success {
			outcome = colorize(colorGreen, "ok")
		} else {
			outcome = colorize(colorRed, "failed")
		}

		sb.WriteString(fmt.Sprintf("%-32s %-8s %s\n",
			truncate(res.PackageID, 32),
			outcome,
			truncate(res.ErrorText, 36)))
	}

	return sb.String()
}

// FormatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
