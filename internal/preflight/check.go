package preflight

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/rovenotes/rove/internal/config"
	"github.com/rovenotes/rove/internal/corpus"
	"github.com/rovenotes/rove/internal/scanner"
)

// CheckStatus is the outcome of one environment check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

var statusNames = [...]string{"PASS", "WARN", "FAIL"}

func (s CheckStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "UNKNOWN"
	}
	return statusNames[s]
}

// CheckResult holds the outcome of a single check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical reports whether a required check failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Checker validates a rove setup: the corpus root, the exclusion patterns,
// and the backend toolchain.
type Checker struct {
	cfg      *config.Config
	lookPath func(file string) (string, error)
	runner   scanner.CommandRunner
	verbose  bool
	output   io.Writer
}

// Option adjusts a Checker at construction.
type Option func(*Checker)

// WithVerbose enables per-check detail output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) { c.verbose = verbose }
}

// WithOutput redirects PrintResults away from stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) { c.output = w }
}

// WithLookPath overrides the PATH probe.
func WithLookPath(f func(string) (string, error)) Option {
	return func(c *Checker) { c.lookPath = f }
}

// WithRunner overrides the subprocess runner used for version capture.
func WithRunner(r scanner.CommandRunner) Option {
	return func(c *Checker) { c.runner = r }
}

// New creates a Checker for cfg.
func New(cfg *config.Config, opts ...Option) *Checker {
	c := &Checker{cfg: cfg, output: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs every check and returns the results.
func (c *Checker) RunAll(ctx context.Context) []CheckResult {
	var results []CheckResult

	results = append(results, c.CheckRoot())
	results = append(results, c.CheckPatterns())
	results = append(results, c.CheckBackendList())
	results = append(results, c.CheckTools(ctx)...)
	results = append(results, c.CheckSelection())

	return results
}

// CheckRoot verifies the corpus root exists, is a directory, and is
// readable.
func (c *Checker) CheckRoot() CheckResult {
	result := CheckResult{
		Name:     "root",
		Required: true,
	}

	resolved, err := corpus.ResolveRoot(c.cfg.Root)
	if err != nil {
		result.Status = StatusFail
		result.Message = err.Error()
		return result
	}

	if _, err := os.ReadDir(resolved); err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("root is not readable: %v", err)
		return result
	}

	result.Status = StatusPass
	result.Message = resolved
	return result
}

// CheckPatterns verifies every exclusion pattern compiles.
func (c *Checker) CheckPatterns() CheckResult {
	result := CheckResult{
		Name:     "patterns",
		Required: true,
	}

	var bad []string
	for _, p := range c.cfg.Exclude {
		if _, err := regexp.Compile(p); err != nil {
			bad = append(bad, fmt.Sprintf("%s: %v", p, err))
		}
	}

	if len(bad) > 0 {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%d invalid pattern(s)", len(bad))
		result.Details = strings.Join(bad, "; ")
		return result
	}

	result.Status = StatusPass
	if len(c.cfg.Exclude) == 0 {
		result.Message = "no exclusion patterns"
	} else {
		result.Message = fmt.Sprintf("%d pattern(s) compile", len(c.cfg.Exclude))
	}
	return result
}

// CheckBackendList verifies that every configured backend entry names a
// recognized tool, and warns about explicit paths that do not exist.
func (c *Checker) CheckBackendList() CheckResult {
	result := CheckResult{
		Name:     "backends",
		Required: true,
	}

	if len(c.cfg.Backends) == 0 {
		result.Status = StatusPass
		result.Message = "empty preference list, builtin walker will be used"
		return result
	}

	var order []string
	var missing []string
	for _, ref := range c.cfg.Backends {
		if !knownBackend(ref.Tool) {
			result.Status = StatusFail
			result.Message = fmt.Sprintf("unrecognized tool %q", ref.Tool)
			result.Details = "supported: " + strings.Join(config.KnownBackends, ", ")
			return result
		}
		order = append(order, ref.Tool)
		if ref.Path != "" {
			if _, err := os.Stat(ref.Path); err != nil {
				missing = append(missing, fmt.Sprintf("%s (%s)", ref.Tool, ref.Path))
			}
		}
	}

	if len(missing) > 0 {
		result.Status = StatusWarn
		result.Message = "configured executable(s) missing, entries will be skipped"
		result.Details = strings.Join(missing, "; ")
		return result
	}

	result.Status = StatusPass
	result.Message = strings.Join(order, " → ")
	return result
}

// CheckSelection reports which driver enumeration would use right now.
func (c *Checker) CheckSelection() CheckResult {
	result := CheckResult{
		Name:     "selection",
		Required: false,
	}

	s, err := scanner.New(scanner.Options{
		Config:   c.cfg,
		Runner:   c.runner,
		LookPath: c.lookPath,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("cannot evaluate selection: %v", err)
		return result
	}

	driver, err := s.Select()
	if err != nil {
		result.Status = StatusFail
		result.Required = true
		result.Message = err.Error()
		return result
	}

	result.Status = StatusPass
	if driver.Builtin() {
		result.Message = "builtin walker"
	} else {
		result.Message = fmt.Sprintf("%s at %s", driver.Tool, driver.Path)
	}
	return result
}

// HasCriticalFailures reports whether any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	return slices.ContainsFunc(results, CheckResult.IsCritical)
}

// SummaryStatus collapses results into "ready", "ready_with_warnings",
// or "failed".
func (c *Checker) SummaryStatus(results []CheckResult) string {
	if c.HasCriticalFailures(results) {
		return "failed"
	}
	for _, r := range results {
		if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			return "ready_with_warnings"
		}
	}
	return "ready"
}

// PrintResults renders results to the configured writer, followed by a
// summary line and any warnings or errors worth repeating.
func (c *Checker) PrintResults(results []CheckResult) {
	var failed, warned []string
	for _, r := range results {
		switch {
		case r.IsCritical():
			failed = append(failed, r.Name+": "+r.Message)
		case r.Status == StatusWarn:
			warned = append(warned, r.Name+": "+r.Message)
		}
	}

	out := c.output
	_, _ = fmt.Fprintf(out, "Rove Environment Check\n======================\n\n")
	for _, r := range results {
		_, _ = fmt.Fprintf(out, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(out, "      %s\n", r.Details)
		}
	}
	_, _ = fmt.Fprintf(out, "\nStatus: %s\n", strings.ToUpper(c.SummaryStatus(results)))

	if len(failed) > 0 {
		_, _ = fmt.Fprintf(out, "\n%d error(s):\n", len(failed))
		for _, line := range failed {
			_, _ = fmt.Fprintf(out, "  - %s\n", line)
		}
	}
	if len(warned) > 0 {
		_, _ = fmt.Fprintf(out, "\n%d warning(s):\n", len(warned))
		for _, line := range warned {
			_, _ = fmt.Fprintf(out, "  - %s\n", line)
		}
	}
}

// knownBackend reports whether tool appears in the supported list.
func knownBackend(tool string) bool {
	return slices.Contains(config.KnownBackends, tool)
}
