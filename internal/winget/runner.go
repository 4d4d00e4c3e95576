package winget

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// ErrToolUnavailable reports that the package manager executable could not
// be located or started. Fatal to the requested cycle, never to the
// process.
var ErrToolUnavailable = errors.New("winget not found: install the App Installer package or make sure winget is on PATH")

// Result is the outcome of one external command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external package manager commands. The engine issues
// exactly four invocations through this interface: list installed, list
// upgradable, update one id, update all. Implementations are called from
// worker goroutines and must be safe for that.
type Runner interface {
	Run(args ...string) (Result, error)
}

// ListArgs is the read command for the installed-package listing.
func ListArgs() []string {
	return []string{"list", "--disable-interactivity"}
}

// UpgradeListArgs is the read command for the upgradable-package listing.
func UpgradeListArgs() []string {
	return []string{"upgrade", "--disable-interactivity"}
}

// UpdateArgs is the write command that upgrades a single package. Write
// commands run silent and auto-accept agreements so no prompt can stall a
// worker.
func UpdateArgs(id string) []string {
	return []string{"upgrade", id, "--silent", "--accept-package-agreements", "--accept-source-agreements"}
}

// UpdateAllArgs is the single bulk write command that upgrades everything.
func UpdateAllArgs() []string {
	return []string{"upgrade", "--all", "--silent", "--accept-package-agreements", "--accept-source-agreements"}
}

// CommandRunner invokes the real executable via os/exec.
type CommandRunner struct {
	Command string
}

// NewCommandRunner returns a runner for the given executable name, falling
// back to "winget" when empty.
func NewCommandRunner(command string) *CommandRunner {
	if command == "" {
		command = "winget"
	}
	return &CommandRunner{Command: command}
}

// Run executes the command and captures the exit code and both output
// streams. A nonzero exit is not an error here: it is reported through
// Result.ExitCode so callers can attribute per-item failures. Only a
// command that cannot start at all produces an error.
func (r *CommandRunner) Run(args ...string) (Result, error) {
	cmd := exec.Command(r.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return res, ErrToolUnavailable
		}
		return res, fmt.Errorf("%s failed to start: %w", r.Command, err)
	}
	return res, nil
}
