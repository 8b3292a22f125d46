package ports

import "go.trai.ch/solbuild/internal/core/domain"

// CacheStore persists per-file compilation fingerprints across runs. It is
// the only shared-mutation point in the pipeline: all reads happen before any
// job starts (a consistent snapshot) and all writes happen in one exclusive
// pass after all jobs complete, ending in the atomic Persist.
//
// A handle is passed explicitly through every call rather than held as a
// process-wide singleton, so independent pipeline instances (tests included)
// can use isolated caches.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	// Entry returns the stored entry for a file under the given key, if any.
	// The second result is false when no entry exists at all for the file
	// and key, distinguishing CacheUnknown from CacheStale.
	Entry(path domain.InternedString, key domain.CacheKey) (domain.CacheEntry, bool)

	// Record overwrites the entry for a file. Idempotent.
	Record(entry domain.CacheEntry)

	// Persist writes the cache to disk atomically (write-to-temp then
	// rename): a crash mid-write never corrupts the prior cache.
	Persist() error
}

// FreshnessChecker answers cache lookups with dependency staleness
// propagated through the current import graph: a file is fresh only when its
// own fingerprint matches and every transitively imported file is fresh too.
type FreshnessChecker interface {
	// Status classifies a graph node.
	Status(id int) domain.CacheStatus

	// Artifacts returns the cached artifact locations for a fresh node.
	Artifacts(id int) []string
}
