// Package cache implements the persistent fingerprint cache that decides
// reuse versus recompilation across runs.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store is a flat JSON file of cache entries keyed by
// (path, compiler, version, settings digest). The serialized form is an
// ordered mapping (encoding/json sorts string map keys), so diffing the
// cache file across runs stays meaningful for tooling.
type Store struct {
	path   string
	logger ports.Logger

	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewStore loads the cache file at the given path. A missing file starts an
// empty cache. A corrupt file also starts an empty cache with a warning:
// the cache is an optimization, not a source of truth, so availability wins
// over strictness and the worst case is a full rebuild.
func NewStore(path string, logger ports.Logger) *Store {
	s := &Store{
		path:    filepath.Clean(path),
		logger:  logger,
		entries: make(map[string]domain.CacheEntry),
	}
	s.load()
	return s
}

func (s *Store) load() {
	//nolint:gosec // Path is derived from the project cache directory
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cache file unreadable, starting with empty cache: " + err.Error())
		}
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.logger.Warn("cache file corrupt, starting with empty cache: " + err.Error())
		s.entries = make(map[string]domain.CacheEntry)
	}
}

func entryKey(path string, key domain.CacheKey) string {
	return fmt.Sprintf("%s|%s|%s|%s", path, key.Kind, key.Version, key.Fingerprint.Digest)
}

// Entry returns the stored entry for a file under the given key. The second
// result distinguishes "no entry" (CacheUnknown to callers) from a present
// but mismatching entry (CacheStale).
func (s *Store) Entry(path domain.InternedString, key domain.CacheKey) (domain.CacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[entryKey(path.String(), key)]
	return entry, ok
}

// Record overwrites the entry for a file. Idempotent; the last write for a
// key wins.
func (s *Store) Record(entry domain.CacheEntry) {
	version, err := semverOf(entry.Version)
	if err != nil {
		// An unparseable version cannot be looked up again; drop it.
		s.logger.Warn("dropping cache entry with invalid version: " + entry.Version)
		return
	}
	key := domain.CacheKey{
		Kind:        entry.Compiler,
		Version:     version,
		Fingerprint: domain.Fingerprint{Digest: entry.SettingsHash, OutputSelection: entry.Output},
	}

	s.mu.Lock()
	s.entries[entryKey(entry.Path, key)] = entry
	s.mu.Unlock()
}

// Persist writes the cache atomically: marshal to a temp file in the target
// directory, then rename over the old file. Readers racing with a crash see
// either the old or the new complete cache, never a partial one. Concurrent
// whole-pipeline runs against the same cache file may still stale-overwrite
// each other's entries; that is an accepted limitation, not a lock.
func (s *Store) Persist() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write temp cache file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close temp cache file")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to replace cache file")
	}
	return nil
}

// Len returns the number of entries, for diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
