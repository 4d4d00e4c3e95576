package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/blackwell-systems/wingup/internal/winget"
)

func TestFilterRecords(t *testing.T) {
	records := []*winget.PackageRecord{
		{Name: "Git", ID: "Git.Git"},
		{Name: "7-Zip", ID: "7zip.7zip"},
		{Name: "GitHub Desktop", ID: "GitHub.GitHubDesktop"},
	}

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{"empty filter keeps all", "", 3},
		{"name match", "zip", 1},
		{"case insensitive", "GIT", 2},
		{"id match", "GitHub.", 1},
		{"no match", "vim", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterRecords(records, tt.filter)
			if len(got) != tt.want {
				t.Errorf("filterRecords(%q) returned %d records, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestUpdatableRecords(t *testing.T) {
	records := []*winget.PackageRecord{
		{Name: "Git", ID: "Git.Git", InstalledVersion: "2.40.0", AvailableVersion: "2.42.0"},
		{Name: "7-Zip", ID: "7zip.7zip", InstalledVersion: "23.01", AvailableVersion: "23.01"},
		{Name: "Acme", ID: "Acme.Tool", InstalledVersion: "1.0"},
	}

	got := updatableRecords(records)
	if len(got) != 1 || got[0].ID != "Git.Git" {
		t.Errorf("updatableRecords() = %v, want only Git.Git", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"scan", "check", "update", "history", "status", "watch"}
	for _, name := range want {
		found := false
		for _, cmd := range RootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestStopWatchDaemonNotRunning(t *testing.T) {
	var buf bytes.Buffer
	pidFile := filepath.Join(t.TempDir(), "watch.pid")

	if err := stopWatchDaemon(&buf, pidFile); err != nil {
		t.Fatalf("stopWatchDaemon() error = %v", err)
	}
	if got := buf.String(); got != "Daemon is not running\n" {
		t.Errorf("output = %q, want plain not-running line", got)
	}
}

func TestStartWatchDaemonAlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "watch.pid")
	logFile := filepath.Join(dir, "watch.log")

	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := startWatchDaemon(io.Discard, pidFile, logFile)
	if err == nil || !strings.Contains(err.Error(), "already running") {
		t.Errorf("startWatchDaemon() error = %v, want already-running message", err)
	}
}

func TestUpdateRequiresTarget(t *testing.T) {
	updateAll = false
	if err := runUpdate(updateCmd, nil); err == nil {
		t.Error("runUpdate() with no ids and no --all should fail")
	}

	updateAll = true
	defer func() { updateAll = false }()
	if err := runUpdate(updateCmd, []string{"Git.Git"}); err == nil {
		t.Error("runUpdate() with --all plus explicit ids should fail")
	}
}
