package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// createTestFiles writes the given relative path -> content map under root.
func createTestFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func newTestClassifier(t *testing.T, root string, patterns []string) *Classifier {
	t.Helper()
	c, err := NewClassifier(root, []string{"org"}, patterns)
	require.NoError(t, err)
	return c
}

func TestNewClassifier_ValidatesRoot(t *testing.T) {
	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "somefile")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	tests := []struct {
		name     string
		root     string
		wantCode string
	}{
		{"empty root", "", roveerrors.ErrCodeRootNotFound},
		{"missing root", filepath.Join(tmp, "missing"), roveerrors.ErrCodeRootNotFound},
		{"root is a file", filePath, roveerrors.ErrCodeRootNotDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassifier(tt.root, []string{"org"}, nil)
			require.Error(t, err)

			var re *roveerrors.RoveError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.wantCode, re.Code)
		})
	}
}

func TestNewClassifier_ValidatesExtensions(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		exts []string
	}{
		{"no extensions", nil},
		{"empty extension", []string{""}},
		{"leading dot", []string{".org"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassifier(root, tt.exts, nil)
			require.Error(t, err)
			assert.Equal(t, roveerrors.ErrCodeInvalidInput, roveerrors.GetCode(err))
		})
	}
}

func TestNewClassifier_InvalidPattern(t *testing.T) {
	root := t.TempDir()

	_, err := NewClassifier(root, []string{"org"}, []string{"["})
	require.Error(t, err)
	assert.Equal(t, roveerrors.ErrCodeBadPattern, roveerrors.GetCode(err))
}

func TestClassifier_IsManaged(t *testing.T) {
	root := t.TempDir()
	createTestFiles(t, root, map[string]string{
		"a.org":                 "* A",
		"sub/b.org.gpg":         "encrypted",
		"c.txt":                 "plain text",
		".attach/d.org":         "* attachment data",
		"deep/nested/e.org.age": "encrypted too",
	})

	c := newTestClassifier(t, root, []string{`\.attach/`})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"org file at root", filepath.Join(root, "a.org"), true},
		{"encrypted org in subdir", filepath.Join(root, "sub", "b.org.gpg"), true},
		{"age encrypted deep file", filepath.Join(root, "deep", "nested", "e.org.age"), true},
		{"wrong extension", filepath.Join(root, "c.txt"), false},
		{"excluded directory", filepath.Join(root, ".attach", "d.org"), false},
		{"root directory itself", root, false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsManaged(tt.path))
		})
	}
}

func TestClassifier_IsManaged_OutsideRoot(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	createTestFiles(t, elsewhere, map[string]string{"outside.org": "* X"})

	c := newTestClassifier(t, root, nil)

	assert.False(t, c.IsManaged(filepath.Join(elsewhere, "outside.org")))
	assert.False(t, c.IsManaged(filepath.Dir(root)))
}

func TestClassifier_IsManaged_NonexistentPath(t *testing.T) {
	// Candidates are not guaranteed to exist; classification is a pure
	// path decision apart from symlink resolution.
	root := t.TempDir()
	c := newTestClassifier(t, root, nil)

	assert.True(t, c.IsManaged(filepath.Join(root, "ghost.org")))
	assert.False(t, c.IsManaged(filepath.Join(root, "ghost.txt")))
}

func TestClassifier_IsManaged_RelativePathResolvesAgainstCwd(t *testing.T) {
	root := t.TempDir()
	createTestFiles(t, root, map[string]string{"a.org": "* A"})

	c := newTestClassifier(t, root, nil)

	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	assert.True(t, c.IsManaged("a.org"))
}

func TestClassifier_SymlinkedRootResolves(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	real := t.TempDir()
	createTestFiles(t, real, map[string]string{"a.org": "* A"})

	link := filepath.Join(t.TempDir(), "notes-link")
	require.NoError(t, os.Symlink(real, link))

	c := newTestClassifier(t, link, nil)

	// Both spellings canonicalize to the same location.
	assert.True(t, c.IsManaged(filepath.Join(link, "a.org")))
	assert.True(t, c.IsManaged(filepath.Join(real, "a.org")))
}

func TestClassifier_ExclusionAppliesToRelativePath(t *testing.T) {
	root := t.TempDir()
	createTestFiles(t, root, map[string]string{"journal/daily/x.org": "* X"})

	// Pattern anchors against the root-relative path, not the absolute one.
	c := newTestClassifier(t, root, []string{`^journal/`})

	assert.False(t, c.IsManaged(filepath.Join(root, "journal", "daily", "x.org")))
	assert.True(t, c.IsManaged(filepath.Join(root, "a.org")))
}

func TestClassifier_Rel(t *testing.T) {
	root := t.TempDir()
	c := newTestClassifier(t, root, nil)

	rel, ok := c.Rel(filepath.Join(root, "sub", "b.org"))
	require.True(t, ok)
	assert.Equal(t, filepath.Join("sub", "b.org"), rel)

	_, ok = c.Rel(filepath.Dir(root))
	assert.False(t, ok)

	_, ok = c.Rel(root)
	assert.False(t, ok)
}

func TestClassifier_ExtensionsReturnsOrderedCopy(t *testing.T) {
	root := t.TempDir()
	c, err := NewClassifier(root, []string{"org", "md", "org"}, nil)
	require.NoError(t, err)

	exts := c.Extensions()
	assert.Equal(t, []string{"org", "md"}, exts)

	// Mutating the copy must not affect the classifier.
	exts[0] = "txt"
	assert.Equal(t, []string{"org", "md"}, c.Extensions())
}

func TestCanonical(t *testing.T) {
	root := t.TempDir()
	createTestFiles(t, root, map[string]string{"a.org": "* A"})

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	t.Run("existing path resolves symlinks", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlink creation requires privileges on windows")
		}
		link := filepath.Join(root, "link.org")
		require.NoError(t, os.Symlink(filepath.Join(root, "a.org"), link))
		assert.Equal(t, filepath.Join(resolvedRoot, "a.org"), Canonical(link))
	})

	t.Run("missing path resolves existing ancestors", func(t *testing.T) {
		got := Canonical(filepath.Join(root, "sub", "..", "ghost.org"))
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, filepath.Join(resolvedRoot, "ghost.org"), got)
	})
}
