// Package ui provides terminal detection and static styling for command
// output.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY reports whether w is an interactive terminal. Anything that is
// not an *os.File (buffers, pipes wrapped in writers) is not one.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectNoColor honors the NO_COLOR convention and its rove-specific
// twin; presence counts, values are ignored.
func DetectNoColor() bool {
	for _, v := range []string{"NO_COLOR", "ROVE_NO_COLOR"} {
		if _, set := os.LookupEnv(v); set {
			return true
		}
	}
	return false
}

// DetectCI reports whether the process runs under a known CI system.
func DetectCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"} {
		if _, set := os.LookupEnv(v); set {
			return true
		}
	}
	return false
}

// UseColor decides whether styled output is appropriate for w: an
// interactive terminal, outside CI, with no no-color override.
func UseColor(w io.Writer) bool {
	return IsTTY(w) && !DetectCI() && !DetectNoColor()
}
