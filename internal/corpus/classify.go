package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// Classifier is the membership predicate for a note corpus. A path is
// managed iff it lives under the root directory, carries an accepted content
// extension, and matches no exclusion rule.
type Classifier struct {
	root     string // absolute, symlink-resolved
	ordered  []string
	accepted map[string]bool
	excluder *Excluder
}

// NewClassifier resolves root and compiles the extension set and exclusion
// patterns. The root must be an existing directory; extensions must be
// non-empty and carry no leading dot.
func NewClassifier(root string, extensions []string, patterns []string) (*Classifier, error) {
	resolved, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		return nil, roveerrors.ValidationError("at least one accepted extension is required", nil)
	}
	ordered := make([]string, 0, len(extensions))
	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if ext == "" {
			return nil, roveerrors.ValidationError("accepted extensions must be non-empty", nil)
		}
		if strings.HasPrefix(ext, ".") {
			return nil, roveerrors.ValidationError(
				fmt.Sprintf("accepted extension %q must not carry a leading dot", ext), nil)
		}
		if accepted[ext] {
			continue
		}
		accepted[ext] = true
		ordered = append(ordered, ext)
	}

	excluder, err := NewExcluder(patterns)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		root:     resolved,
		ordered:  ordered,
		accepted: accepted,
		excluder: excluder,
	}, nil
}

// IsManaged reports whether path belongs to the corpus. The extension is
// taken from the path as given; the descendant check compares canonical
// forms so symlinked locations classify consistently. Existence and
// readability are not checked here.
func (c *Classifier) IsManaged(path string) bool {
	if path == "" {
		return false
	}
	ext, ok := ExtensionOf(path)
	if !ok || !c.accepted[ext] {
		return false
	}
	rel, ok := c.Rel(path)
	if !ok {
		return false
	}
	return !c.excluder.Excluded(rel)
}

// Rel returns path's canonical form relative to the root. The second return
// is false when path does not live strictly under the root.
func (c *Classifier) Rel(path string) (string, bool) {
	rel, err := filepath.Rel(c.root, Canonical(path))
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// Root returns the resolved root directory.
func (c *Classifier) Root() string {
	return c.root
}

// Extensions returns the accepted extensions in configuration order.
func (c *Classifier) Extensions() []string {
	out := make([]string, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Excluder returns the compiled exclusion rules.
func (c *Classifier) Excluder() *Excluder {
	return c.excluder
}

// ResolveRoot makes root absolute and symlink-resolved, verifying it is an
// existing directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		return "", roveerrors.New(roveerrors.ErrCodeRootNotFound, "root directory not configured", nil).
			WithSuggestion("Set root in .rove.yaml or pass --root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", roveerrors.New(roveerrors.ErrCodePathResolve,
			fmt.Sprintf("cannot resolve root %q: %v", root, err), err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", roveerrors.New(roveerrors.ErrCodeRootNotFound,
				fmt.Sprintf("root directory does not exist: %s", abs), err).
				WithDetail("root", abs)
		}
		return "", roveerrors.New(roveerrors.ErrCodePathResolve,
			fmt.Sprintf("cannot resolve root %q: %v", abs, err), err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", roveerrors.New(roveerrors.ErrCodeRootNotFound,
			fmt.Sprintf("root directory does not exist: %s", resolved), err)
	}
	if !info.IsDir() {
		return "", roveerrors.New(roveerrors.ErrCodeRootNotDir,
			fmt.Sprintf("root path is not a directory: %s", resolved), nil).
			WithDetail("root", resolved)
	}
	return resolved, nil
}

// Canonical returns path in absolute, symlink-resolved form. A path that is
// not on disk resolves its deepest existing ancestor and keeps the missing
// tail lexically, so classification can still reason about it.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	dir, base := filepath.Split(abs)
	dir = filepath.Clean(dir)
	if dir == abs {
		// Filesystem root
		return abs
	}
	return filepath.Join(Canonical(dir), base)
}
