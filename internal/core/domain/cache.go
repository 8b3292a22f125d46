package domain

import "github.com/Masterminds/semver/v3"

// CacheStatus is the result of a cache lookup.
type CacheStatus int

const (
	// CacheUnknown means no entry exists for the file under the requested
	// key.
	CacheUnknown CacheStatus = iota
	// CacheStale means an entry exists but its fingerprint no longer matches
	// the current content, compiler, version or settings, or a transitive
	// import of the file is itself not fresh.
	CacheStale
	// CacheFresh means the entry matches exactly and every transitive import
	// is fresh too; the recorded artifacts remain authoritative.
	CacheFresh
)

func (s CacheStatus) String() string {
	switch s {
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	default:
		return "unknown"
	}
}

// CacheKey identifies the compilation context a cache entry was produced
// under.
type CacheKey struct {
	Kind        CompilerKind
	Version     *semver.Version
	Fingerprint Fingerprint
}

// CacheEntry is the persisted fingerprint of one compiled file: enough to
// decide reuse versus recompilation, without the artifacts themselves.
type CacheEntry struct {
	Path          string          `json:"path"`
	ContentHash   string          `json:"contentHash"`
	Compiler      CompilerKind    `json:"compiler"`
	Version       string          `json:"version"`
	SettingsHash  string          `json:"settingsHash"`
	Output        OutputSelection `json:"outputSelection,omitempty"`
	ArtifactPaths []string        `json:"artifacts,omitempty"`
	Success       bool            `json:"success"`
}

// Matches reports whether the entry can serve a lookup for the given content
// hash and key. The settings comparison is the relaxed one: exact digest,
// output selection by superset.
func (e CacheEntry) Matches(contentHash string, key CacheKey) bool {
	if e.ContentHash != contentHash || e.Compiler != key.Kind || e.Version != key.Version.String() {
		return false
	}
	cached := Fingerprint{Digest: e.SettingsHash, OutputSelection: e.Output}
	return cached.IsCompatibleWith(key.Fingerprint)
}
