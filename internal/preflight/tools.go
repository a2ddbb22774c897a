package preflight

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rovenotes/rove/internal/scanner"
)

// externalTools lists the probe targets, in display order.
var externalTools = []string{"find", "fd", "fdfind", "rg"}

// versionTimeout bounds each --version subprocess.
const versionTimeout = 5 * time.Second

// CheckTools probes each supported external tool concurrently and captures
// a version banner when the tool offers one. A missing tool is a warning;
// the builtin walker always remains available.
func (c *Checker) CheckTools(ctx context.Context) []CheckResult {
	lookPath := c.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	runner := c.runner
	if runner == nil {
		runner = scanner.ExecRunner{}
	}

	results := make([]CheckResult, len(externalTools))
	g, ctx := errgroup.WithContext(ctx)
	for i, tool := range externalTools {
		i, tool := i, tool
		g.Go(func() error {
			results[i] = checkTool(ctx, tool, lookPath, runner)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func checkTool(ctx context.Context, tool string, lookPath func(string) (string, error), runner scanner.CommandRunner) CheckResult {
	result := CheckResult{
		Name:     "tool:" + tool,
		Required: false,
	}

	path, err := lookPath(tool)
	if err != nil {
		result.Status = StatusWarn
		result.Message = "not installed"
		return result
	}

	result.Status = StatusPass
	result.Details = path
	if version := toolVersion(ctx, runner, path); version != "" {
		result.Message = version
	} else {
		// BSD find offers no --version; presence still passes.
		result.Message = "installed"
	}
	return result
}

// toolVersion captures the first line of `tool --version`.
func toolVersion(ctx context.Context, runner scanner.CommandRunner, path string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	stdout, _, err := runner.Run(ctx, path, "--version")
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(stdout), "\n")
	return strings.TrimSpace(line)
}
