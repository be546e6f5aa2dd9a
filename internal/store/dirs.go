// Package store resolves per-user locations for persisted hashing state.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CheckpointDir returns the default directory holding resumable hashing checkpoints.
func CheckpointDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(appData, "sha2stream", "checkpoints"), nil
	}
	if cache := os.Getenv("XDG_CACHE_HOME"); cache != "" {
		return filepath.Join(cache, "sha2stream", "checkpoints"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}
	return filepath.Join(home, ".cache", "sha2stream", "checkpoints"), nil
}

// EnsureDir creates dir with owner-only permissions when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}
	return nil
}
