package watcher

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, time.Second, func() {}); err == nil {
		t.Error("New() with no paths should fail")
	}
	if _, err := New([]string{"/tmp"}, time.Second, nil); err == nil {
		t.Error("New() with nil callback should fail")
	}
}

func TestWatcherFiresAfterSettle(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New([]string{dir}, 100*time.Millisecond, func() {
		fired.Add(1)
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	// A burst of writes collapses into one callback.
	for i := 0; i < 3; i++ {
		name := filepath.Join(dir, "pkg"+string(rune('a'+i))+".msi")
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("settle callback never fired")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}

	// Let any stragglers land, then confirm the burst produced one callback.
	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}
}

func TestWatcherQuietWithoutEvents(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New([]string{dir}, 50*time.Millisecond, func() {
		fired.Add(1)
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("callback fired %d times with no events", got)
	}
}

func TestStartWithMissingPaths(t *testing.T) {
	w, err := New([]string{"/nonexistent/path/one", "/nonexistent/path/two"}, time.Second, func() {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err == nil {
		w.Stop()
		t.Error("Start() should fail when no path can be watched")
	}
}

func TestIsDaemonRunning(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "wingup.pid")

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if running {
		t.Error("IsDaemonRunning() = true for missing PID file")
	}

	// Our own PID is alive.
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	running, err = IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if !running {
		t.Error("IsDaemonRunning() = false for live process")
	}

	// Garbage PID file reads as not running.
	if err := os.WriteFile(pidFile, []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatal(err)
	}
	running, err = IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if running {
		t.Error("IsDaemonRunning() = true for invalid PID file")
	}
}

func TestIsDaemonRunningRemovesStalePIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "wingup.pid")

	// A PID far beyond any live process reads as a dead daemon.
	if err := os.WriteFile(pidFile, []byte("999999999\n"), 0644); err != nil {
		t.Fatal(err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if running {
		t.Error("IsDaemonRunning() = true for dead process")
	}
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("stale PID file was not removed")
	}
}

func TestStopDaemonWithoutPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "wingup.pid")

	err := StopDaemon(pidFile)
	if err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("StopDaemon() error = %v, want not-running message", err)
	}
}

func TestStartDaemonRefusesWhenAlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "wingup.pid")
	logFile := filepath.Join(dir, "wingup.log")

	// Our own PID marks the daemon as alive; StartDaemon must bail before
	// forking anything.
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := StartDaemon(pidFile, logFile)
	if err == nil || !strings.Contains(err.Error(), "already running") {
		t.Errorf("StartDaemon() error = %v, want already-running message", err)
	}
}
