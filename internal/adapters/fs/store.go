// Package fs implements the source store: reading, normalizing and
// content-addressing source files.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// parallelReadThreshold is the batch size above which ReadAll fans reads out
// across workers. Small batches are not worth the goroutine setup.
const parallelReadThreshold = 8

var _ ports.SourceReader = (*Store)(nil)

// Store reads source files from disk rooted at a project directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Read loads a single file. The returned SourceFile's content is normalized
// (CRLF to LF) before hashing, so the hash is insensitive to line-ending
// churn from version control checkouts.
func (s *Store) Read(path string) (*domain.SourceFile, error) {
	//nolint:gosec // Paths come from resolved project configuration
	raw, err := os.ReadFile(filepath.Join(s.root, path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read source file"), "path", path)
	}
	return domain.NewSourceFile(path, raw), nil
}

// ReadAll loads a set of files into a mapping keyed by canonical path. Reads
// run in parallel when the batch exceeds a small threshold; each read
// produces an independent entry so there is no shared mutable state beyond
// the guarded result map. Any single failure fails the whole batch — callers
// wanting partial tolerance must prefilter.
func (s *Store) ReadAll(ctx context.Context, paths []string) (map[domain.InternedString]*domain.SourceFile, error) {
	result := make(map[domain.InternedString]*domain.SourceFile, len(paths))

	if len(paths) <= parallelReadThreshold {
		for _, path := range paths {
			file, err := s.Read(path)
			if err != nil {
				return nil, err
			}
			result[file.Path] = file
		}
		return result, nil
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		g.Go(func() error {
			file, err := s.Read(path)
			if err != nil {
				return err
			}
			mu.Lock()
			result[file.Path] = file
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Glob expands the configured source patterns to concrete files relative to
// the store root. Patterns without metacharacters are required to exist.
func (s *Store) Glob(patterns []string) ([]string, error) {
	unique := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(s.root, pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob sources"), "pattern", pattern)
		}
		if len(matches) == 0 {
			return nil, zerr.With(zerr.New("source not found"), "pattern", pattern)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(s.root, match)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize source path"), "path", match)
			}
			unique[filepath.ToSlash(rel)] = true
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	sort.Strings(result)
	return result, nil
}

// Exists reports whether a path exists under the store root and is a regular
// file.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(filepath.Join(s.root, path))
	return err == nil && info.Mode().IsRegular()
}
