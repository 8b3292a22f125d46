package cache

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
)

func semverOf(s string) (*semver.Version, error) {
	return semver.NewVersion(s)
}

var _ ports.FreshnessChecker = (*Checker)(nil)

// Checker classifies graph nodes against a cache snapshot, propagating
// staleness through the import graph: a file is fresh only when its own
// fingerprint matches and every transitively imported file is fresh as well.
// All lookups happen against the store state at construction time, before
// any job runs, giving the planner a consistent snapshot.
type Checker struct {
	store ports.CacheStore
	graph *domain.Graph
	keyOf func(id int) domain.CacheKey

	local     []domain.CacheStatus
	artifacts [][]string
	localDone []bool

	final     []domain.CacheStatus
	finalDone []bool
}

// NewChecker creates a Checker over the given graph. keyOf supplies the
// cache key for each node; the version component varies per partition.
func NewChecker(store ports.CacheStore, graph *domain.Graph, keyOf func(id int) domain.CacheKey) *Checker {
	n := graph.Len()
	return &Checker{
		store:     store,
		graph:     graph,
		keyOf:     keyOf,
		local:     make([]domain.CacheStatus, n),
		artifacts: make([][]string, n),
		localDone: make([]bool, n),
		final:     make([]domain.CacheStatus, n),
		finalDone: make([]bool, n),
	}
}

// localStatus classifies a node on its own fingerprint only, ignoring
// dependencies.
func (c *Checker) localStatus(id int) domain.CacheStatus {
	if c.localDone[id] {
		return c.local[id]
	}
	c.localDone[id] = true

	file := c.graph.Node(id)
	entry, ok := c.store.Entry(file.Path, c.keyOf(id))
	switch {
	case !ok:
		c.local[id] = domain.CacheUnknown
	case !entry.Success || !entry.Matches(file.Hash, c.keyOf(id)):
		c.local[id] = domain.CacheStale
	default:
		c.local[id] = domain.CacheFresh
		c.artifacts[id] = entry.ArtifactPaths
	}
	return c.local[id]
}

// Status classifies a node with dependency propagation. A locally fresh file
// whose transitive imports include any non-fresh file reports CacheStale.
func (c *Checker) Status(id int) domain.CacheStatus {
	if c.finalDone[id] {
		return c.final[id]
	}
	c.finalDone[id] = true

	status := c.localStatus(id)
	if status == domain.CacheFresh {
		for _, dep := range c.graph.Imports(id) {
			if c.localStatus(dep) != domain.CacheFresh {
				status = domain.CacheStale
				break
			}
		}
	}
	c.final[id] = status
	return status
}

// Artifacts returns the cached artifact locations for a node. Meaningful
// only for nodes whose Status is CacheFresh.
func (c *Checker) Artifacts(id int) []string {
	c.localStatus(id)
	return c.artifacts[id]
}
