// Package partition splits the import graph into version partitions: maximal
// groups of files that must share one resolved compiler version because they
// import each other.
package partition

import (
	"strings"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Partition resolves one compiler version per connected component of the
// graph (import edges treated as undirected, since a compiler must see a
// whole import closure together). The policy selects among the versions
// satisfying the intersection of the component's constraints; the default
// prefers the oldest compatible compiler for reproducible builds. An
// isolated unconstrained file gets the latest available version.
//
// An empty intersection fails with the full list of constrained files in the
// component, so a human can fix the pragmas.
func Partition(graph *domain.Graph, project *domain.Project) ([]domain.Partition, error) {
	var partitions []domain.Partition

	for _, comp := range graph.Components() {
		var constraints []domain.VersionConstraint
		for _, id := range comp {
			if vc := graph.Constraint(id); !vc.IsZero() {
				constraints = append(constraints, vc)
			}
		}

		var version = project.LatestVersion()
		if len(constraints) > 0 {
			version = project.Policy.Select(project.Versions, constraints)
			if version == nil {
				return nil, conflictError(graph, comp)
			}
		}

		files := make([]domain.InternedString, len(comp))
		for i, id := range comp {
			files[i] = graph.Node(id).Path
		}
		partitions = append(partitions, domain.Partition{Version: version, Files: files})
	}

	return partitions, nil
}

// conflictError names every constrained file of the component together with
// its pragma text.
func conflictError(graph *domain.Graph, comp []int) error {
	var parts []string
	for _, id := range comp {
		if vc := graph.Constraint(id); !vc.IsZero() {
			parts = append(parts, graph.Node(id).Path.String()+" ("+vc.Raw+")")
		}
	}
	return zerr.With(zerr.Wrap(domain.ErrVersionConflict, "no version satisfies all pragmas"), "files", strings.Join(parts, ", "))
}
