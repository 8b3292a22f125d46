package domain

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Remapping rewrites a symbolic import prefix to a concrete path prefix,
// e.g. "@openzeppelin/" -> "node_modules/@openzeppelin/".
type Remapping struct {
	Prefix string
	Target string
}

// ApplyRemappings rewrites an import string using the longest matching
// prefix. It returns the input unchanged (and false) when no prefix matches.
func ApplyRemappings(remappings []Remapping, importString string) (string, bool) {
	best := -1
	for i, r := range remappings {
		if strings.HasPrefix(importString, r.Prefix) {
			if best == -1 || len(r.Prefix) > len(remappings[best].Prefix) {
				best = i
			}
		}
	}
	if best == -1 {
		return importString, false
	}
	r := remappings[best]
	return r.Target + importString[len(r.Prefix):], true
}

// Project is the loaded build configuration for one compilation run.
type Project struct {
	// Root is the project root directory; all canonical paths are relative
	// to it.
	Root string

	// Sources are the root source files (or glob patterns) compilation
	// starts from.
	Sources []string

	// IncludePaths are additional library roots searched for non-relative
	// imports.
	IncludePaths []string

	// Remappings translate symbolic import prefixes into paths.
	Remappings []Remapping

	// Compiler selects the backend.
	Compiler CompilerKind

	// Versions is the set of compiler versions available for partitioning,
	// sorted ascending.
	Versions []*semver.Version

	// Policy decides which satisfying version a partition resolves to.
	Policy VersionPolicy

	// Settings is the compiler settings document shared by all jobs.
	Settings Settings

	// CacheDir holds the fingerprint cache and build records.
	CacheDir string

	// Jobs bounds concurrent compiler invocations; 0 means NumCPU.
	Jobs int
}

// SortVersions sorts the available versions ascending in place. Partitioning
// relies on this order for the smallest-satisfying selection.
func (p *Project) SortVersions() {
	sort.Sort(semver.Collection(p.Versions))
}

// LatestVersion returns the largest available version, or nil when the set
// is empty.
func (p *Project) LatestVersion() *semver.Version {
	if len(p.Versions) == 0 {
		return nil
	}
	return p.Versions[len(p.Versions)-1]
}
