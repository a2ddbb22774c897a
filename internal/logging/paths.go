package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir is ~/.rove/logs, or a temp-dir equivalent when no home
// directory can be resolved.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".rove", "logs")
}

// DefaultLogPath is the log file rove commands append to.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "rove.log")
}
