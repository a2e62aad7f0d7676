// Package atomicfile writes files via a temp-and-rename dance so that
// readers never observe a partially written config or state file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically (best-effort cross-platform).
//
// The data lands in a temporary file next to the target and is renamed
// into place, so a crash mid-write leaves the original intact.
//
// A perm of 0 preserves the existing file's mode, falling back to 0644
// for new files.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	perm = resolvePerm(path, perm)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Chmod can fail on some filesystems; the write still proceeds.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows refuses to rename over an existing file. Removing the
		// target first loses atomicity but keeps the write working.
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

func resolvePerm(path string, perm os.FileMode) os.FileMode {
	if perm != 0 {
		return perm
	}
	if st, err := os.Stat(path); err == nil {
		return st.Mode()
	}
	return 0o644
}
