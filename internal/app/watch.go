package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/wingup/internal/config"
	"github.com/blackwell-systems/wingup/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool
	watchStatus      bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Rescan automatically when install directories change",
		Long: `Watch the install directories configured in the wingup config file and
rescan the inventory whenever filesystem activity settles. Installing
or removing software outside wingup then keeps the database current
without a manual scan.

Configure the watched paths in ~/.config/wingup/config.yaml:

  watch:
    paths:
      - C:\Program Files
      - C:\Program Files (x86)
    settle_seconds: 5

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as background process
  • Stop: Stop a running daemon`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  wingup watch

  # Run as background daemon
  wingup watch --daemon

  # Stop running daemon
  wingup watch --stop

  # Is the daemon running?
  wingup watch --status`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.wingup/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.wingup/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().BoolVar(&watchStatus, "status", false, "report whether the daemon is running")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		return stopWatchDaemon(cmd.OutOrStdout(), watchPIDFile)
	}

	if watchStatus {
		running, err := watcher.IsDaemonRunning(watchPIDFile)
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}
		if running {
			fmt.Println("Daemon is running")
		} else {
			fmt.Println("Daemon is not running")
		}
		return nil
	}

	// The daemon parent only forks; the child builds the watcher.
	if watchDaemon {
		return startWatchDaemon(cmd.OutOrStdout(), watchPIDFile, watchLogFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.Watch.Paths) == 0 {
		return fmt.Errorf("no watch paths configured: add watch.paths to the wingup config file")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	eng, _ := newEngine(db)
	defer eng.Close()

	// Each settled burst triggers a scan followed by an update check so
	// the stored inventory carries fresh available versions. A rescan
	// arriving while the previous one still runs is dropped by the
	// engine, which is the right behavior for bursty installers.
	onSettle := func() {
		res, err := eng.ScanWait()
		if err != nil || res.Err != nil {
			return
		}
		_, _ = eng.CheckWait()
	}

	w, err := watcher.New(cfg.Watch.Paths, time.Duration(cfg.Watch.SettleSeconds)*time.Second, onSettle)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}

	return runWatchForeground(w, cfg)
}

func stopWatchDaemon(out io.Writer, pidFile string) error {
	running, err := watcher.IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Fprintln(out, "Daemon is not running")
		return nil
	}

	if err := watcher.StopDaemon(pidFile); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	fmt.Fprintln(out, "✓ Daemon stopped")

	return nil
}

func startWatchDaemon(out io.Writer, pidFile, logFile string) error {
	// StartDaemon refuses to fork over a live daemon, so no pre-check here.
	if err := watcher.StartDaemon(pidFile, logFile); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Fprintln(out, "✓ Daemon started")
	fmt.Fprintf(out, "\n  PID file: %s\n", pidFile)
	fmt.Fprintf(out, "  Log file: %s\n", logFile)
	fmt.Fprintf(out, "\nTo stop: wingup watch --stop\n")

	return nil
}

func runWatchForeground(w *watcher.Watcher, cfg *config.Config) error {
	fmt.Println("Watching install directories (press Ctrl+C to stop)...")
	fmt.Println()

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	for _, path := range cfg.Watch.Paths {
		fmt.Printf("  watching %s\n", path)
	}
	fmt.Printf("\nRescan fires after %d seconds of quiet. Press Ctrl+C to stop.\n", cfg.Watch.SettleSeconds)
	fmt.Println()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	fmt.Println("Watch stopped")

	return nil
}
