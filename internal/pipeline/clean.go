package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Removal retry policy. A file manager, editor or sync client holding a
// file open makes removal fail transiently, mostly on Windows.
var (
	cleanAttempts = 8
	cleanDelay    = 250 * time.Millisecond
	removeAll     = os.RemoveAll
)

// CleanOutput removes dir so a build starts from nothing. Removal is
// retried; when it keeps failing dir is renamed to
// <dir>.old_YYYYMMDD_HHMMSS and left for the user, and the new name is
// returned. A missing dir is not an error.
func CleanOutput(dir string, now time.Time) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if abs == filepath.Dir(abs) {
		return "", fmt.Errorf("refusing to clean filesystem root %s", abs)
	}
	if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	var lastErr error
	for i := 0; i < cleanAttempts; i++ {
		if lastErr = removeAll(abs); lastErr == nil {
			return "", nil
		}
		if i < cleanAttempts-1 {
			time.Sleep(cleanDelay)
		}
	}

	moved := abs + ".old_" + now.Format("20060102_150405")
	if err := os.Rename(abs, moved); err != nil {
		return "", fmt.Errorf("clean %s: %w (rename: %v)", dir, lastErr, err)
	}
	return moved, nil
}
