package scanner

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// Select resolves the backend preference list to a concrete driver. Entries
// are probed in order and the first installed tool wins. A "builtin" entry
// stops probing immediately. An entry with an explicit executable path is
// taken when that file exists and is executable, and skipped otherwise; no
// PATH lookup happens for it. An empty or exhausted list falls back to the
// builtin walker, never to an error.
//
// An entry naming an unrecognized tool fails with a config error before any
// probing continues; a typo must not silently change which backend runs.
func (s *Scanner) Select() (Driver, error) {
	for _, ref := range s.backends {
		tool, ok := toolFromID(ref.Tool)
		if !ok {
			return Driver{}, roveerrors.New(roveerrors.ErrCodeUnknownBackend,
				fmt.Sprintf("no driver for tool %q", ref.Tool), nil).
				WithSuggestion("Supported tools: " + strings.Join(KnownTools(), ", "))
		}

		if tool == ToolBuiltin {
			return Driver{Tool: ToolBuiltin}, nil
		}

		if ref.Path != "" {
			if isExecutable(ref.Path) {
				return Driver{Tool: tool, Path: ref.Path}, nil
			}
			s.logger.Debug("configured executable not usable, trying next backend",
				"tool", ref.Tool, "path", ref.Path)
			continue
		}

		// Tool identifiers double as binary names.
		if path, err := s.lookPath(string(tool)); err == nil {
			return Driver{Tool: tool, Path: path}, nil
		}
	}

	return Driver{Tool: ToolBuiltin}, nil
}

// KnownTools returns the recognized tool identifiers in display order.
func KnownTools() []string {
	return []string{
		string(ToolFind),
		string(ToolFD),
		string(ToolFDFind),
		string(ToolRG),
		string(ToolBuiltin),
	}
}

// isExecutable reports whether path names a regular file this process could
// execute. Windows has no execute bit, so existence suffices there.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
