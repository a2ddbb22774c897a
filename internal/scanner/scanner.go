package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/rovenotes/rove/internal/config"
	"github.com/rovenotes/rove/internal/corpus"
	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// Scanner enumerates the managed files of one corpus.
type Scanner struct {
	classifier *corpus.Classifier
	backends   []config.BackendRef
	runner     CommandRunner
	lookPath   func(file string) (string, error)
	logger     *slog.Logger
}

// New creates a Scanner for the corpus described by opts.Config. The root
// must exist; extensions and exclusion patterns are validated up front.
func New(opts Options) (*Scanner, error) {
	if opts.Config == nil {
		return nil, roveerrors.ValidationError("config is required", nil)
	}

	classifier, err := corpus.NewClassifier(opts.Config.Root, opts.Config.Extensions, opts.Config.Exclude)
	if err != nil {
		return nil, err
	}

	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scanner{
		classifier: classifier,
		backends:   opts.Config.Backends,
		runner:     runner,
		lookPath:   lookPath,
		logger:     logger,
	}, nil
}

// Classifier returns the membership predicate backing this scanner.
func (s *Scanner) Classifier() *corpus.Classifier {
	return s.classifier
}

// IsManaged reports whether path belongs to the corpus.
func (s *Scanner) IsManaged(path string) bool {
	return s.classifier.IsManaged(path)
}

// List enumerates every managed file under the root. Results are absolute,
// symlink-resolved, deduplicated paths in first-discovery order. A failing
// backend subprocess fails the enumeration; there is no silent fallback to
// a different tool once one has been selected.
func (s *Scanner) List(ctx context.Context) ([]string, error) {
	start := time.Now()

	driver, err := s.Select()
	if err != nil {
		return nil, err
	}

	var candidates []string
	if driver.Builtin() {
		s.logger.Debug("enumerating with builtin walker", "root", s.classifier.Root())
		candidates, err = s.walk(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		s.logger.Debug("enumerating with external tool",
			"tool", driver.Tool, "executable", driver.Path)
		out, err := s.runDriver(ctx, driver)
		if err != nil {
			return nil, err
		}
		candidates, err = parseOutput(out)
		if err != nil {
			return nil, err
		}
	}

	files := s.collect(candidates)

	s.logger.Info("enumeration complete",
		"tool", driver.Tool,
		"candidates", len(candidates),
		"files", len(files),
		"duration", time.Since(start))

	return files, nil
}

// runDriver invokes one backend subprocess and maps failures onto the
// backend error codes. Context cancellation surfaces as the context's own
// error so callers can tell interruption from tool failure.
func (s *Scanner) runDriver(ctx context.Context, d Driver) ([]byte, error) {
	args := argvFor(d.Tool, s.classifier.Root(), s.classifier.Extensions())

	stdout, stderr, err := s.runner.Run(ctx, d.Path, args...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ripgrep reports "nothing matched" as exit 1 with silent
			// stderr, which in --files mode just means an empty corpus.
			if d.Tool == ToolRG && exitErr.ExitCode() == 1 && len(stderr) == 0 {
				return stdout, nil
			}
			return nil, roveerrors.New(roveerrors.ErrCodeBackendExit,
				fmt.Sprintf("%s exited with status %d", d.Tool, exitErr.ExitCode()), err).
				WithDetail("tool", string(d.Tool)).
				WithDetail("stderr", tail(stderr, 512))
		}
		return nil, roveerrors.New(roveerrors.ErrCodeBackendStart,
			fmt.Sprintf("cannot start %s: %v", d.Path, err), err).
			WithDetail("tool", string(d.Tool))
	}

	return stdout, nil
}

// ansiEscapes matches CSI sequences some tools emit when color detection
// misfires.
var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// parseOutput splits raw tool output into candidate paths: one path per
// line, blank lines dropped, stray terminal escapes stripped. NUL bytes
// mean the output is not the line-oriented text this parser understands.
func parseOutput(out []byte) ([]string, error) {
	if bytes.IndexByte(out, 0) >= 0 {
		return nil, roveerrors.New(roveerrors.ErrCodeBackendOutput,
			"tool output contains NUL bytes", nil).
			WithSuggestion("Check that the configured executable is the expected tool")
	}

	cleaned := ansiEscapes.ReplaceAll(out, nil)

	var paths []string
	for _, line := range strings.Split(string(cleaned), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// collect classifies raw candidates, canonicalizes the survivors, and drops
// duplicates while preserving first-discovery order.
func (s *Scanner) collect(candidates []string) []string {
	files := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))

	for _, candidate := range candidates {
		if !s.classifier.IsManaged(candidate) {
			continue
		}
		canonical := corpus.Canonical(candidate)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		files = append(files, canonical)
	}

	return files
}

// tail returns at most n trailing bytes of b, trimmed.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return strings.TrimSpace(string(b))
}
