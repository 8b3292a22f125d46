// Package cas implements content-addressed storage for build records: one
// JSON document per compiler invocation, named by the hash of its own
// content.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store persists build records under a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at the given directory. The directory is
// created on first write, not here, so read-only consumers can open a store
// that does not exist yet.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Put writes a record under its content address and returns the id. Writing
// an identical record twice is a no-op ending at the same path.
func (s *Store) Put(record domain.BuildRecord) (string, error) {
	id := record.ID()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal build record")
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create build record directory")
	}

	path := s.pathOf(id)
	tmp, err := os.CreateTemp(s.dir, id+".tmp-*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create temp build record")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", zerr.Wrap(err, "failed to write build record")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", zerr.Wrap(err, "failed to close build record")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", zerr.Wrap(err, "failed to place build record")
	}
	return id, nil
}

// Get retrieves a record by its content address. Returns nil, nil when the
// record does not exist.
func (s *Store) Get(id string) (*domain.BuildRecord, error) {
	//nolint:gosec // ids are hex content hashes produced by Put
	data, err := os.ReadFile(s.pathOf(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read build record"), "id", id)
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal build record"), "id", id)
	}
	return &record, nil
}

// List returns the ids of all stored records, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to list build records")
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.Contains(name, ".tmp-") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Clear removes every stored record.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.Wrap(err, "failed to clear build records")
	}
	return nil
}

func (s *Store) pathOf(id string) string {
	return filepath.Join(s.dir, id+".json")
}
