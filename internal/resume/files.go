package resume

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"sha2stream/internal/sha2"
)

// Paths describes the checkpoint and lock files for one hashed file.
type Paths struct {
	Meta string
	Lock string
}

// ResolvePaths derives stable checkpoint paths for target inside dir.
// Files are keyed by the SHA-256 of the absolute target path and the variant.
func ResolvePaths(dir, target string, bits int) (Paths, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve absolute path: %w", err)
	}
	key := sha2.Sum256([]byte(fmt.Sprintf("%d\x00%s", bits, abs)))
	base := filepath.Join(dir, hex.EncodeToString(key[:16]))
	return Paths{Meta: base + ".ckpt", Lock: base + ".lock"}, nil
}

// Clear removes the checkpoint metadata.
func Clear(paths Paths) error {
	if err := os.Remove(paths.Meta); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}
