package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath   string
	toolPath string

	// RootCmd is the root command for wingup
	RootCmd = &cobra.Command{
		Use:   "wingup",
		Short: "Keep winget-managed packages current",
		Long: `wingup wraps the winget package manager to track your installed
packages, reconcile available updates against the inventory, and apply
them one by one or in bulk. Every scan, update run, and outcome is
recorded in a local SQLite database.

Quick Start:
  1. wingup scan      # index installed packages
  2. wingup check     # reconcile available updates
  3. wingup update    # apply everything updatable

Examples:
  # Scan installed packages
  wingup scan

  # Show packages with pending updates
  wingup check --updates-only

  # Update two specific packages
  wingup update Git.Git 7zip.7zip

  # Update everything
  wingup update --all

  # Review past update runs
  wingup history

  # Rescan automatically when install directories change
  wingup watch --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := getDBPath()
			fmt.Println("wingup: keep winget-managed packages current")
			fmt.Println()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("Run 'wingup scan' to get started.")
			} else {
				fmt.Println("Tip: Run 'wingup check' to see pending updates.")
				fmt.Println("     Run 'wingup status' for an overview.")
			}
			fmt.Println("Run 'wingup --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.wingup/wingup.db)")
	RootCmd.PersistentFlags().StringVar(&toolPath, "winget", "", "winget executable (default: from config, then \"winget\")")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	wingupDir := filepath.Join(home, ".wingup")
	if err := os.MkdirAll(wingupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create wingup directory: %w", err)
	}

	return filepath.Join(wingupDir, "wingup.db"), nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	wingupDir := filepath.Join(home, ".wingup")
	if err := os.MkdirAll(wingupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create wingup directory: %w", err)
	}

	return filepath.Join(wingupDir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	wingupDir := filepath.Join(home, ".wingup")
	if err := os.MkdirAll(wingupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create wingup directory: %w", err)
	}

	return filepath.Join(wingupDir, "watch.log"), nil
}
