// Package config loads the optional wingup configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Tool  ToolConfig  `yaml:"tool"`
	Watch WatchConfig `yaml:"watch"`
}

// ToolConfig holds package-manager invocation settings
type ToolConfig struct {
	Command string `yaml:"command"` // Executable name or path, default "winget"
}

// WatchConfig holds filesystem watch settings for the background daemon
type WatchConfig struct {
	Paths         []string `yaml:"paths"`          // Directories to watch for install activity
	SettleSeconds int      `yaml:"settle_seconds"` // Quiet period before a rescan fires
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Tool:  ToolConfig{Command: "winget"},
		Watch: WatchConfig{SettleSeconds: 5},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/wingup/config.yaml (XDG standard - priority)
// 2. ~/.wingup/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "wingup", "config.yaml"),
		filepath.Join(home, ".wingup", "config.yaml"),
	}, nil
}

// FindConfigPath returns the first existing config file path.
// Returns the default (XDG) path if no config file exists yet.
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file. A missing
// file is not an error; the defaults apply.
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path, layering the
// file's values over the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Tool.Command == "" {
		cfg.Tool.Command = "winget"
	}
	if cfg.Watch.SettleSeconds <= 0 {
		cfg.Watch.SettleSeconds = 5
	}

	return cfg, nil
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
