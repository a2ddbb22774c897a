// Package scanner enumerates managed files under a corpus root. It selects
// a fast external tool (find, fd, rg) from an ordered preference list and
// falls back to a pure-Go directory walk when none are installed. All
// backends produce the same file set on a readable tree; candidates are
// classified, canonicalized, and deduplicated before being returned.
package scanner

import (
	"log/slog"

	"github.com/rovenotes/rove/internal/config"
)

// Tool identifies a backend enumeration tool.
type Tool string

const (
	// ToolFind is POSIX find.
	ToolFind Tool = "find"
	// ToolFD is sharkdp/fd.
	ToolFD Tool = "fd"
	// ToolFDFind is fd under its Debian binary name.
	ToolFDFind Tool = "fdfind"
	// ToolRG is ripgrep in --files mode.
	ToolRG Tool = "rg"
	// ToolBuiltin is a sentinel that stops probing and selects the pure-Go
	// walker regardless of what is installed.
	ToolBuiltin Tool = "builtin"
)

// toolFromID maps a configuration identifier to a Tool.
func toolFromID(id string) (Tool, bool) {
	switch Tool(id) {
	case ToolFind, ToolFD, ToolFDFind, ToolRG, ToolBuiltin:
		return Tool(id), true
	}
	return "", false
}

// Driver is a resolved backend: the tool plus the executable that will run
// it. The builtin driver carries no executable path.
type Driver struct {
	Tool Tool
	Path string
}

// Builtin reports whether the driver is the pure-Go walker.
func (d Driver) Builtin() bool {
	return d.Tool == ToolBuiltin
}

// Options configures a Scanner. Zero-valued fields select production
// defaults: ExecRunner, exec.LookPath, and slog.Default.
type Options struct {
	// Config supplies the root, accepted extensions, exclusion patterns,
	// and backend preference list. Required.
	Config *config.Config

	// Runner executes backend subprocesses.
	Runner CommandRunner

	// LookPath probes PATH for backend executables.
	LookPath func(file string) (string, error)

	// Logger receives enumeration diagnostics.
	Logger *slog.Logger
}

// variantSuffixes expands accepted extensions into the complete set of file
// name suffixes, including the encrypted forms. For ["org"] the result is
// [".org", ".org.gpg", ".org.age"].
func variantSuffixes(exts []string) []string {
	out := make([]string, 0, len(exts)*3)
	for _, ext := range exts {
		out = append(out, "."+ext, "."+ext+".gpg", "."+ext+".age")
	}
	return out
}

// variantExtensions expands accepted extensions into the dotless variant
// list understood by fd's -e flag.
func variantExtensions(exts []string) []string {
	out := make([]string, 0, len(exts)*3)
	for _, ext := range exts {
		out = append(out, ext, ext+".gpg", ext+".age")
	}
	return out
}

// matchesName reports whether a file name carries one of the suffixes.
func matchesName(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
