package output

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/wingup/internal/store"
	"github.com/blackwell-systems/wingup/internal/winget"
)

func TestRenderPackageTableEmpty(t *testing.T) {
	got := RenderPackageTable(nil)
	if got != "No packages found.\n" {
		t.Errorf("RenderPackageTable(nil) = %q", got)
	}
}

func TestRenderPackageTable(t *testing.T) {
	records := []*winget.PackageRecord{
		{Name: "Git", ID: "Git.Git", InstalledVersion: "2.40.0", AvailableVersion: "2.42.0", Source: "winget"},
		{Name: "7-Zip", ID: "7zip.7zip", InstalledVersion: "23.01", AvailableVersion: "23.01", Source: "winget"},
		{Name: "Acme Tool", ID: "Acme.Tool", InstalledVersion: "1.0", Source: "winget"},
	}

	got := RenderPackageTable(records)

	if !strings.Contains(got, "Package") || !strings.Contains(got, "Status") {
		t.Error("missing header")
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// Header + separator + 3 rows.
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), got)
	}

	// Sorted by name: 7-Zip, Acme Tool, Git.
	if !strings.HasPrefix(lines[2], "7-Zip") {
		t.Errorf("first row = %q, want 7-Zip", lines[2])
	}
	if !strings.HasPrefix(lines[4], "Git") {
		t.Errorf("last row = %q, want Git", lines[4])
	}

	if !strings.Contains(lines[4], "update") {
		t.Errorf("Git row missing update status: %q", lines[4])
	}
	if !strings.Contains(lines[2], "up to date") {
		t.Errorf("7-Zip row missing up-to-date status: %q", lines[2])
	}
	if !strings.Contains(lines[3], "unknown") || !strings.Contains(lines[3], "—") {
		t.Errorf("Acme row missing unknown status: %q", lines[3])
	}
}

func TestRenderRunTable(t *testing.T) {
	runs := []*store.UpdateRun{
		{ID: 3, StartedAt: time.Now(), Bulk: true, Requested: 4, Succeeded: 4, Finished: true},
		{ID: 2, StartedAt: time.Now().Add(-time.Hour), Bulk: false, Requested: 3, Succeeded: 2, Finished: true},
		{ID: 1, StartedAt: time.Now().Add(-2 * time.Hour), Bulk: false, Requested: 1, Succeeded: 0, Finished: false},
	}

	got := RenderRunTable(runs)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), got)
	}

	if !strings.Contains(lines[2], "bulk") || !strings.Contains(lines[2], "done") {
		t.Errorf("bulk run row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "partial") {
		t.Errorf("partial run row = %q", lines[3])
	}
	if !strings.Contains(lines[4], "running") {
		t.Errorf("unfinished run row = %q", lines[4])
	}
}

func TestRenderResultTable(t *testing.T) {
	results := []*store.UpdateResult{
		{RunID: 1, PackageID: "Git.Git", Success: true},
		{RunID: 1, PackageID: "7zip.7zip", Success: false, ErrorText: "installer hash mismatch"},
	}

	got := RenderResultTable(results)
	if !strings.Contains(got, "Git.Git") {
		t.Error("missing Git.Git row")
	}
	if !strings.Contains(got, "failed") || !strings.Contains(got, "installer hash mismatch") {
		t.Errorf("missing failure detail:\n%s", got)
	}

	if empty := RenderResultTable(nil); !strings.Contains(empty, "No per-item results") {
		t.Errorf("empty result table = %q", empty)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"just now", time.Now().Add(-30 * time.Second), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{"one hour", time.Now().Add(-90 * time.Minute), "1 hour ago"},
		{"days", time.Now().Add(-49 * time.Hour), "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.t); got != tt.want {
				t.Errorf("FormatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"Microsoft.VisualStudioCode", 14, "Microsoft.V..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}
