// Package fileutil provides atomic output files.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TempFile is a hidden temporary file next to Target that replaces Target on Commit.
type TempFile struct {
	*os.File

	// Target is the final output path.
	Target string

	committed bool
}

// NewTempFile creates a temporary file in the directory of target.
// Caller must defer Cleanup.
func NewTempFile(target string) (*TempFile, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempFile{
		File:   tmpFile,
		Target: target,
	}, nil
}

// Commit sets perm on the temporary file, closes it and renames it onto Target.
func (t *TempFile) Commit(perm os.FileMode) error {
	if err := t.Chmod(perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := t.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(t.Name(), t.Target); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	t.committed = true

	return nil
}

// Cleanup closes and removes the temporary file unless it was committed.
func (t *TempFile) Cleanup() {
	if t.committed {
		return
	}

	t.Close()           //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(t.Name()) //nolint:errcheck,gosec // best-effort cleanup
}

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// IsExec reports whether any execute bit is set on the file described by info.
func IsExec(info os.FileInfo) bool {
	return info.Mode()&executableBits != 0
}

// OutputMode returns the permissions for a file produced from the source described by info.
// Outputs are private to the owner; executable sources keep their execute bits.
func OutputMode(info os.FileInfo) os.FileMode {
	perm := os.FileMode(ownerReadWrite)
	if IsExec(info) {
		perm |= executableBits
	}

	return perm
}

// FinalizeOutput optionally preserves timestamps and returns the output file size.
func FinalizeOutput(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return outInfo.Size(), nil
}
