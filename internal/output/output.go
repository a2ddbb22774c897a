// Package output prints the human-facing side of command output.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Writer prints status lines for a command. Machine-readable output
// (file listings, JSON) bypasses it and goes straight to stdout.
type Writer struct {
	out io.Writer
}

// New returns a Writer printing to out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints one icon-prefixed line. An empty icon indents the line
// to align with iconed ones. Write errors are dropped; this is console
// chatter, not data.
func (w *Writer) Status(icon, msg string) {
	if icon == "" {
		icon = "  "
	}
	_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
}

// Statusf is Status with Sprintf formatting.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success, Warning, and Error are Status with fixed icons.

func (w *Writer) Success(msg string) { w.Status("✅", msg) }

func (w *Writer) Warning(msg string) { w.Status("⚠️ ", msg) }

func (w *Writer) Error(msg string) { w.Status("❌", msg) }

// Code prints an indented block set off by blank lines.
func (w *Writer) Code(block string) {
	w.Newline()
	for _, line := range strings.Split(block, "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	w.Newline()
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
