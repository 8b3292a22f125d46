package planner_test

import (
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solbuild/internal/adapters/cache"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/engine/planner"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type fixture struct {
	graph   *domain.Graph
	project *domain.Project
	store   *cache.Store
	files   map[string]*domain.SourceFile
}

// newFixture builds a graph a.sol -> b.sol, c.sol isolated, all under one
// ^0.8.0 pragma resolved to 0.8.19.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := domain.NewGraph()
	vc, err := domain.ParseVersionConstraint("^0.8.0")
	require.NoError(t, err)

	files := map[string]*domain.SourceFile{}
	for _, p := range []string{"a.sol", "b.sol", "c.sol"} {
		f := domain.NewSourceFile(p, []byte("contract "+p+" {}"))
		files[p] = f
		_, err := g.AddNode(f, vc)
		require.NoError(t, err)
	}
	a, _ := g.Lookup(domain.NewInternedString("a.sol"))
	b, _ := g.Lookup(domain.NewInternedString("b.sol"))
	require.NoError(t, g.AddEdge(a, b, "./b.sol"))

	version := semver.MustParse("0.8.19")
	project := &domain.Project{
		Compiler: domain.CompilerSolc,
		Versions: []*semver.Version{version},
		Settings: domain.Settings{
			Optimizer:       domain.OptimizerSettings{Enabled: true, Runs: 200},
			OutputSelection: domain.OutputSelection{"*": {"abi", "evm.bytecode"}},
		},
	}

	return &fixture{
		graph:   g,
		project: project,
		store:   cache.NewStore(filepath.Join(t.TempDir(), "cache.json"), nopLogger{}),
		files:   files,
	}
}

func (f *fixture) partitions() []domain.Partition {
	return []domain.Partition{
		{
			Version: f.project.Versions[0],
			Files: []domain.InternedString{
				domain.NewInternedString("a.sol"),
				domain.NewInternedString("b.sol"),
			},
		},
		{
			Version: f.project.Versions[0],
			Files:   []domain.InternedString{domain.NewInternedString("c.sol")},
		},
	}
}

// record writes a fresh cache entry for a file, optionally with a content
// hash belonging to different content.
func (f *fixture) record(path, contentHash string, selection domain.OutputSelection) {
	fp := f.project.Settings.Fingerprint()
	if selection == nil {
		selection = fp.OutputSelection
	}
	f.store.Record(domain.CacheEntry{
		Path:          path,
		ContentHash:   contentHash,
		Compiler:      f.project.Compiler,
		Version:       "0.8.19",
		SettingsHash:  fp.Digest,
		Output:        selection,
		ArtifactPaths: []string{"record-" + path + "#C"},
		Success:       true,
	})
}

func TestPlanner_ColdCache(t *testing.T) {
	f := newFixture(t)

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)

	require.Len(t, plan.Jobs, 2)
	assert.Equal(t, 2, plan.Jobs[0].DirtyCount())
	assert.Equal(t, 1, plan.Jobs[1].DirtyCount())
	assert.Empty(t, plan.CachedArtifacts)
	assert.Empty(t, plan.Fresh)
	assert.Equal(t, "0.8.19", plan.Versions[domain.NewInternedString("a.sol")])
}

func TestPlanner_AllFresh_NoJobs(t *testing.T) {
	f := newFixture(t)
	for p, file := range f.files {
		f.record(p, file.Hash, nil)
	}

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)

	// A second run over unchanged inputs schedules nothing and serves all
	// artifacts from the cache.
	assert.Empty(t, plan.Jobs)
	assert.Len(t, plan.Fresh, 3)
	assert.Equal(t, []string{"record-a.sol#C"}, plan.CachedArtifacts[domain.NewInternedString("a.sol")])
}

func TestPlanner_StalenessPropagatesToImporters(t *testing.T) {
	f := newFixture(t)
	// a.sol and c.sol entries match; b.sol was recorded against old content.
	f.record("a.sol", f.files["a.sol"].Hash, nil)
	f.record("b.sol", "0000000000000000", nil)
	f.record("c.sol", f.files["c.sol"].Hash, nil)

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)

	// a.sol imports b.sol, so it is recompiled despite its own entry
	// matching. c.sol is untouched.
	require.Len(t, plan.Jobs, 1)
	job := plan.Jobs[0]
	assert.True(t, job.IsDirty(domain.NewInternedString("a.sol")))
	assert.True(t, job.IsDirty(domain.NewInternedString("b.sol")))

	assert.True(t, plan.Fresh[domain.NewInternedString("c.sol")])
	assert.NotContains(t, plan.Fresh, domain.NewInternedString("a.sol"))
}

func TestPlanner_FreshLeafRidesAlongAsContext(t *testing.T) {
	f := newFixture(t)
	// Only the leaf b.sol is fresh; the importer a.sol is cold. The job
	// still carries both files, but b.sol is context, not dirty.
	f.record("b.sol", f.files["b.sol"].Hash, nil)

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)

	require.Len(t, plan.Jobs, 2)
	job := plan.Jobs[0]
	assert.Len(t, job.Files, 2)
	assert.True(t, job.IsDirty(domain.NewInternedString("a.sol")))
	assert.False(t, job.IsDirty(domain.NewInternedString("b.sol")))

	// Its cached artifacts stay authoritative.
	assert.True(t, plan.Fresh[domain.NewInternedString("b.sol")])
	assert.Equal(t, []string{"record-b.sol#C"}, plan.CachedArtifacts[domain.NewInternedString("b.sol")])
}

func TestPlanner_WiderCachedSelectionServesNarrowerRequest(t *testing.T) {
	f := newFixture(t)
	wide := domain.OutputSelection{"*": {"abi", "evm.bytecode", "metadata", "storageLayout"}}
	for p, file := range f.files {
		f.record(p, file.Hash, wide)
	}

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)
	assert.Empty(t, plan.Jobs)
}

func TestPlanner_NarrowerCachedSelectionForcesRecompile(t *testing.T) {
	f := newFixture(t)
	narrow := domain.OutputSelection{"*": {"abi"}}
	for p, file := range f.files {
		f.record(p, file.Hash, narrow)
	}

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)
	require.Len(t, plan.Jobs, 2)
}

func TestPlanner_SettingsChangeInvalidatesEverything(t *testing.T) {
	f := newFixture(t)
	for p, file := range f.files {
		f.record(p, file.Hash, nil)
	}

	f.project.Settings.Optimizer.Runs = 1000

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)
	require.Len(t, plan.Jobs, 2)
	assert.Empty(t, plan.Fresh)
}

func TestPlanner_FailedEntryStaysDirty(t *testing.T) {
	f := newFixture(t)
	fp := f.project.Settings.Fingerprint()
	f.store.Record(domain.CacheEntry{
		Path:         "c.sol",
		ContentHash:  f.files["c.sol"].Hash,
		Compiler:     f.project.Compiler,
		Version:      "0.8.19",
		SettingsHash: fp.Digest,
		Output:       fp.OutputSelection,
		Success:      false,
	})

	plan := planner.Build(f.graph, f.partitions(), f.store, f.project)

	// An unsuccessful prior compile never counts as fresh.
	require.Len(t, plan.Jobs, 2)
	assert.True(t, plan.Jobs[1].IsDirty(domain.NewInternedString("c.sol")))
}
