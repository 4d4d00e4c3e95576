//go:build windows

package watcher

import (
	"os"
	"syscall"
)

const detachedProcess = 0x00000008

// daemonSysProcAttr detaches the child from the parent console so it
// survives the launching terminal closing.
func daemonSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
}

// processAlive relies on FindProcess opening a handle, which fails for a
// PID that is no longer running.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	process.Release()
	return true
}

// Windows has no SIGTERM delivery, so stopping means killing.
func stopProcess(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}
