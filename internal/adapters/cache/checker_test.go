package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solbuild/internal/adapters/cache"
	"go.trai.ch/solbuild/internal/core/domain"
)

// checkerFixture: a.sol -> b.sol -> c.sol, all resolved to 0.8.19.
type checkerFixture struct {
	graph *domain.Graph
	store *cache.Store
	files map[string]*domain.SourceFile
	key   domain.CacheKey
}

func newCheckerFixture(t *testing.T) *checkerFixture {
	t.Helper()

	g := domain.NewGraph()
	files := map[string]*domain.SourceFile{}
	for _, p := range []string{"a.sol", "b.sol", "c.sol"} {
		f := domain.NewSourceFile(p, []byte("contract "+p+" {}"))
		files[p] = f
		_, err := g.AddNode(f, domain.VersionConstraint{})
		require.NoError(t, err)
	}
	require.NoError(t, g.AddEdge(0, 1, "./b.sol"))
	require.NoError(t, g.AddEdge(1, 2, "./c.sol"))

	return &checkerFixture{
		graph: g,
		store: cache.NewStore(filepath.Join(t.TempDir(), "cache.json"), quietLogger(t)),
		files: files,
		key: domain.CacheKey{
			Kind:        domain.CompilerSolc,
			Version:     semver.MustParse("0.8.19"),
			Fingerprint: domain.Fingerprint{Digest: "digest"},
		},
	}
}

func (f *checkerFixture) record(path, contentHash string) {
	f.store.Record(domain.CacheEntry{
		Path:          path,
		ContentHash:   contentHash,
		Compiler:      domain.CompilerSolc,
		Version:       "0.8.19",
		SettingsHash:  "digest",
		ArtifactPaths: []string{"rec-" + path + "#C"},
		Success:       true,
	})
}

func (f *checkerFixture) checker() *cache.Checker {
	return cache.NewChecker(f.store, f.graph, func(int) domain.CacheKey { return f.key })
}

func TestChecker_Statuses(t *testing.T) {
	f := newCheckerFixture(t)
	// a.sol: no entry. b.sol: stale entry. c.sol: fresh entry.
	f.record("b.sol", "outdated")
	f.record("c.sol", f.files["c.sol"].Hash)

	c := f.checker()
	assert.Equal(t, domain.CacheUnknown, c.Status(0))
	assert.Equal(t, domain.CacheStale, c.Status(1))
	assert.Equal(t, domain.CacheFresh, c.Status(2))
	assert.Equal(t, []string{"rec-c.sol#C"}, c.Artifacts(2))
}

func TestChecker_StalenessPropagates(t *testing.T) {
	f := newCheckerFixture(t)
	// Every fingerprint matches except the leaf c.sol.
	f.record("a.sol", f.files["a.sol"].Hash)
	f.record("b.sol", f.files["b.sol"].Hash)
	f.record("c.sol", "outdated")

	c := f.checker()
	assert.Equal(t, domain.CacheStale, c.Status(0))
	assert.Equal(t, domain.CacheStale, c.Status(1))
	assert.Equal(t, domain.CacheStale, c.Status(2))
}

func TestChecker_FreshChainStaysFresh(t *testing.T) {
	f := newCheckerFixture(t)
	for p, file := range f.files {
		f.record(p, file.Hash)
	}

	c := f.checker()
	for id := 0; id < f.graph.Len(); id++ {
		assert.Equal(t, domain.CacheFresh, c.Status(id))
	}
}

func TestChecker_MissingDependencyEntryStalesImporter(t *testing.T) {
	f := newCheckerFixture(t)
	f.record("a.sol", f.files["a.sol"].Hash)
	f.record("b.sol", f.files["b.sol"].Hash)
	// c.sol has no entry at all.

	c := f.checker()
	assert.Equal(t, domain.CacheStale, c.Status(0))
	assert.Equal(t, domain.CacheUnknown, c.Status(2))
}
