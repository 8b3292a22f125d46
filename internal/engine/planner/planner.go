// Package planner turns version partitions and cache state into the minimal
// set of compiler jobs.
package planner

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solbuild/internal/adapters/cache"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
)

// Plan is the outcome of consulting the cache: the jobs to run, plus the
// artifact references of files that stay fresh and will be served from the
// cache instead of their recompiled output.
type Plan struct {
	Jobs []domain.CompilerJob

	// CachedArtifacts maps every fresh file to its prior artifact locations.
	CachedArtifacts map[domain.InternedString][]string

	// Fresh marks files whose cache entries remain authoritative.
	Fresh map[domain.InternedString]bool

	// Versions records every file's resolved compiler version.
	Versions map[domain.InternedString]string
}

// Build computes the plan. All cache reads happen here, before any job
// starts, against one consistent snapshot.
//
// A partition with no dirty file emits no job. Otherwise exactly one job
// covers the whole partition, dirty and clean files alike: the compiler
// needs the complete self-consistent source set to resolve intra-partition
// imports, even though only the dirty subset's output is treated as new.
func Build(graph *domain.Graph, partitions []domain.Partition, store ports.CacheStore, project *domain.Project) *Plan {
	fingerprint := project.Settings.Fingerprint()

	versionOf := make(map[domain.InternedString]*semver.Version, graph.Len())
	for _, p := range partitions {
		for _, f := range p.Files {
			versionOf[f] = p.Version
		}
	}

	checker := cache.NewChecker(store, graph, func(id int) domain.CacheKey {
		return domain.CacheKey{
			Kind:        project.Compiler,
			Version:     versionOf[graph.Node(id).Path],
			Fingerprint: fingerprint,
		}
	})

	plan := &Plan{
		CachedArtifacts: make(map[domain.InternedString][]string),
		Fresh:           make(map[domain.InternedString]bool),
		Versions:        make(map[domain.InternedString]string),
	}

	for _, p := range partitions {
		dirty := make(map[domain.InternedString]bool)
		for _, f := range p.Files {
			plan.Versions[f] = p.Version.String()
			id, _ := graph.Lookup(f)
			if checker.Status(id) == domain.CacheFresh {
				plan.Fresh[f] = true
				plan.CachedArtifacts[f] = checker.Artifacts(id)
			} else {
				dirty[f] = true
			}
		}

		if len(dirty) == 0 {
			continue
		}
		plan.Jobs = append(plan.Jobs, domain.NewCompilerJob(
			project.Compiler, p.Version, project.Settings, p.Files, dirty,
		))
	}

	return plan
}
