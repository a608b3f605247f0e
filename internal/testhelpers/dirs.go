// Package testhelpers provides common utilities for tests across packages.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// ConfigDir creates a temporary directory with the .progressdash structure.
// Returns the temp dir root and the config dir path.
// The temp dir is automatically cleaned up when the test completes.
func ConfigDir(t *testing.T) (tempDir, configDir string) {
	t.Helper()
	tempDir = t.TempDir()
	configDir = filepath.Join(tempDir, ".progressdash")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	return tempDir, configDir
}

// WorkingDirWithConfig creates a temporary working directory whose
// .progressdash/config.toml holds content. Returns the working directory.
func WorkingDirWithConfig(t *testing.T, content string) string {
	t.Helper()
	tempDir, configDir := ConfigDir(t)
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return tempDir
}

// File writes content to name in a new temporary directory and returns its path.
func File(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
