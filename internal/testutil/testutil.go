// Package testutil provides testing utilities for fitsched tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLink is the link configuration used across store tests.
const (
	TestBaseURL    = "https://meet.jit.si/"
	TestRoomPrefix = "FitnessSession_"
)

// DataDir creates a temporary data directory and returns it along with the
// users and sessions store paths inside it. The directory is cleaned up when
// the test completes.
func DataDir(t *testing.T) (dir, usersPath, sessionsPath string) {
	t.Helper()

	dir = t.TempDir()
	return dir, filepath.Join(dir, "users.txt"), filepath.Join(dir, "sessions.txt")
}

// SeedFile writes raw store content to path, creating parent directories.
// Used to set up stores with known (possibly malformed) line content.
func SeedFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create store directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to seed store file: %v", err)
	}
}

// ReadFile returns the raw content of a store file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	return string(data)
}
