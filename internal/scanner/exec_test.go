package scanner

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
}

func TestExecRunner_CapturesBothStreams(t *testing.T) {
	requireSh(t)

	stdout, stderr, err := ExecRunner{}.Run(context.Background(),
		"sh", "-c", "printf 'out'; printf 'err' >&2")

	require.NoError(t, err)
	assert.Equal(t, "out", string(stdout))
	assert.Equal(t, "err", string(stderr))
}

func TestExecRunner_NonzeroExit(t *testing.T) {
	requireSh(t)

	stdout, _, err := ExecRunner{}.Run(context.Background(),
		"sh", "-c", "printf 'partial'; exit 2")

	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
	// Output produced before the failure is still captured.
	assert.Equal(t, "partial", string(stdout))
}

func TestExecRunner_StartFailure(t *testing.T) {
	_, _, err := ExecRunner{}.Run(context.Background(),
		"/nonexistent/rove-test-binary")

	require.Error(t, err)
	var exitErr *exec.ExitError
	assert.False(t, errors.As(err, &exitErr), "start failure is not an exit failure")
}

func TestExecRunner_ContextCancelKillsProcess(t *testing.T) {
	requireSh(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := ExecRunner{}.Run(ctx, "sh", "-c", "sleep 10")

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Error(t, ctx.Err())
}
