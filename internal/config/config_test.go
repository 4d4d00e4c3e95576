package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Tool.Command != "winget" {
		t.Errorf("Tool.Command = %q, want winget", cfg.Tool.Command)
	}
	if cfg.Watch.SettleSeconds != 5 {
		t.Errorf("Watch.SettleSeconds = %d, want 5", cfg.Watch.SettleSeconds)
	}
	if len(cfg.Watch.Paths) != 0 {
		t.Errorf("Watch.Paths = %v, want empty", cfg.Watch.Paths)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `tool:
  command: /usr/local/bin/winget
watch:
  paths:
    - C:\Program Files
    - C:\Program Files (x86)
  settle_seconds: 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Tool.Command != "/usr/local/bin/winget" {
		t.Errorf("Tool.Command = %q", cfg.Tool.Command)
	}
	if len(cfg.Watch.Paths) != 2 {
		t.Errorf("Watch.Paths = %v, want 2 entries", cfg.Watch.Paths)
	}
	if cfg.Watch.SettleSeconds != 10 {
		t.Errorf("Watch.SettleSeconds = %d, want 10", cfg.Watch.SettleSeconds)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `watch:
  paths:
    - C:\Program Files
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Tool.Command != "winget" {
		t.Errorf("Tool.Command = %q, want default winget", cfg.Tool.Command)
	}
	if cfg.Watch.SettleSeconds != 5 {
		t.Errorf("Watch.SettleSeconds = %d, want default 5", cfg.Watch.SettleSeconds)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Watch.Paths = []string{`D:\Apps`}
	cfg.Watch.SettleSeconds = 3
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if len(got.Watch.Paths) != 1 || got.Watch.Paths[0] != `D:\Apps` {
		t.Errorf("Watch.Paths = %v", got.Watch.Paths)
	}
	if got.Watch.SettleSeconds != 3 {
		t.Errorf("Watch.SettleSeconds = %d, want 3", got.Watch.SettleSeconds)
	}
}
