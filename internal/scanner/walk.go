package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// walk enumerates candidates without a subprocess. It matches the external
// tools' semantics: directory symlinks are followed, only regular files are
// reported, and every extension variant counts. A visited set of resolved
// directory paths breaks symlink cycles. Files the process cannot open and
// directories it cannot read are skipped, except the root itself, whose
// unreadability fails the enumeration.
func (s *Scanner) walk(ctx context.Context) ([]string, error) {
	root := s.classifier.Root()
	suffixes := variantSuffixes(s.classifier.Extensions())

	visited := map[string]bool{root: true}
	var files []string
	if err := s.walkDir(ctx, root, root, suffixes, visited, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) walkDir(ctx context.Context, root, dir string, suffixes []string, visited map[string]bool, files *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if dir == root {
			return roveerrors.New(roveerrors.ErrCodePathResolve,
				fmt.Sprintf("cannot read corpus root: %v", err), err)
		}
		s.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				// Dangling symlink.
				continue
			}
			mode = info.Mode()
		}

		switch {
		case mode.IsDir():
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				continue
			}
			if visited[resolved] {
				continue
			}
			visited[resolved] = true
			if err := s.walkDir(ctx, root, path, suffixes, visited, files); err != nil {
				return err
			}

		case mode.IsRegular():
			if !matchesName(entry.Name(), suffixes) {
				continue
			}
			if !s.classifier.IsManaged(path) {
				continue
			}
			if !readable(path) {
				s.logger.Debug("skipping unreadable file", "path", path)
				continue
			}
			*files = append(*files, path)
		}
	}

	return nil
}

// readable reports whether the file can actually be opened for reading.
func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
