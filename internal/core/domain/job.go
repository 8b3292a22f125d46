package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cespare/xxhash/v2"
)

// CompilerKind identifies a compiler backend.
type CompilerKind string

const (
	CompilerSolc   CompilerKind = "solc"
	CompilerResolc CompilerKind = "resolc"
	CompilerZksolc CompilerKind = "zksolc"
	CompilerVyper  CompilerKind = "vyper"
)

// Valid reports whether the kind is one of the supported backends.
func (k CompilerKind) Valid() bool {
	switch k {
	case CompilerSolc, CompilerResolc, CompilerZksolc, CompilerVyper:
		return true
	}
	return false
}

// CompilerJob is one planned compiler invocation: a version partition whose
// dirty subset needs recompiling. Files is the full import closure of the
// partition, sorted by path; every file in it satisfies Version under its own
// constraint. Clean files ride along as read-only context so the compiler can
// resolve intra-partition imports, but only the dirty subset's output is
// treated as new.
type CompilerJob struct {
	ID       string
	Kind     CompilerKind
	Version  *semver.Version
	Settings Settings
	Files    []InternedString
	Dirty    map[InternedString]bool
}

// NewCompilerJob builds a job with a deterministic id derived from the kind,
// version, settings digest and file set.
func NewCompilerJob(kind CompilerKind, version *semver.Version, settings Settings, files []InternedString, dirty map[InternedString]bool) CompilerJob {
	sorted := append([]InternedString(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	h := xxhash.New()
	_, _ = h.WriteString(string(kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(version.String())
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(settings.Fingerprint().Digest)
	_, _ = h.Write([]byte{0})
	for _, f := range sorted {
		_, _ = h.WriteString(f.String())
		_, _ = h.Write([]byte{0})
	}

	return CompilerJob{
		ID:       fmt.Sprintf("%s-%s-%08x", kind, version, h.Sum64()),
		Kind:     kind,
		Version:  version,
		Settings: settings,
		Files:    sorted,
		Dirty:    dirty,
	}
}

// IsDirty reports whether the job is responsible for the given file's output,
// as opposed to carrying it as context only.
func (j CompilerJob) IsDirty(path InternedString) bool {
	return j.Dirty[path]
}

// DirtyCount returns the number of files the job recompiles on its own
// account.
func (j CompilerJob) DirtyCount() int { return len(j.Dirty) }

// String renders a short human-readable description used in progress output.
func (j CompilerJob) String() string {
	return fmt.Sprintf("%s %s (%d files, %d dirty)", j.Kind, j.Version, len(j.Files), len(j.Dirty))
}

// Partition is a maximal group of files that must share one resolved
// compiler version because they import each other.
type Partition struct {
	Version *semver.Version
	Files   []InternedString
}

func (p Partition) String() string {
	paths := make([]string, len(p.Files))
	for i, f := range p.Files {
		paths[i] = f.String()
	}
	return p.Version.String() + ": " + strings.Join(paths, ", ")
}
