package scanner

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner executes one backend subprocess and captures its output.
// The seam lets tests exercise the enumeration pipeline without any of the
// real tools installed.
type CommandRunner interface {
	// Run executes name with the given argument vector. Arguments are passed
	// structurally; nothing is interpreted by a shell. Both output streams
	// are fully buffered before Run returns.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
