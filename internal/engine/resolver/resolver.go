// Package resolver builds the import graph: it scans sources for import
// directives and version pragmas, applies remappings, discovers transitive
// imports and assembles the domain graph.
package resolver

import (
	"context"
	"errors"
	"path"
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Syntactic scans, not a full parse. The compiler performs real parsing
// later; these only need to find referenced paths and pragma ranges.
var (
	solidityImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:[^;'"]*?from\s+)?["']([^"']+)["']`)
	solidityPragmaRe = regexp.MustCompile(`(?m)^\s*pragma\s+solidity\s+([^;]+);`)

	vyperImportRe = regexp.MustCompile(`(?m)^\s*(?:import\s+([\w.]+)|from\s+([\w.]+)\s+import\s+(\w+))`)
	vyperPragmaRe = regexp.MustCompile(`(?m)^\s*#\s*(?:pragma\s+version|@version)\s+(\S+)`)
)

// SourceLocator is the file-system surface the resolver needs: reading
// batches of sources and probing candidate paths for existence.
type SourceLocator interface {
	ports.SourceReader
	Exists(path string) bool
	Glob(patterns []string) ([]string, error)
}

// Resolver resolves a project's root sources into a complete import graph.
type Resolver struct {
	store SourceLocator
	pre   ports.Preprocessor
}

// New creates a Resolver. The preprocessor may be nil.
func New(store SourceLocator, pre ports.Preprocessor) *Resolver {
	return &Resolver{store: store, pre: pre}
}

// Resolve expands the project's source patterns, reads and preprocesses the
// roots, then walks imports until the graph is closed. Traversal is
// depth-first with an explicit stack; a node is added to the graph exactly
// once, so a back-edge into an already-visited file is recorded as an edge
// without revisiting and cycles cannot loop the walk. Visit order is fixed
// (sorted roots, sorted imports per file) for reproducibility.
func (r *Resolver) Resolve(ctx context.Context, project *domain.Project) (*domain.Graph, error) {
	roots, err := r.store.Glob(project.Sources)
	if err != nil {
		return nil, err
	}

	sources, err := r.store.ReadAll(ctx, roots)
	if err != nil {
		return nil, err
	}

	if r.pre != nil {
		sources, err = r.pre.Preprocess(sources)
		if err != nil {
			return nil, zerr.Wrap(err, "preprocessing failed")
		}
	}

	graph := domain.NewGraph()
	var stack []int

	addFile := func(file *domain.SourceFile) (int, error) {
		id, err := graph.AddNode(file, r.scanPragma(project.Compiler, file))
		if err != nil {
			return 0, err
		}
		stack = append(stack, id)
		return id, nil
	}

	// Preprocessors may add files beyond the globbed roots; seed them all.
	seeds := make([]string, 0, len(sources))
	for p := range sources {
		seeds = append(seeds, p.String())
	}
	sort.Strings(seeds)
	for _, p := range seeds {
		if _, err := addFile(sources[domain.NewInternedString(p)]); err != nil {
			return nil, err
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		file := graph.Node(id)
		for _, imp := range r.scanImports(project.Compiler, file) {
			target, err := r.resolveImport(project, sources, file.Path.String(), imp)
			if err != nil {
				return nil, err
			}

			targetPath := domain.NewInternedString(target)
			targetID, known := graph.Lookup(targetPath)
			if !known {
				imported, ok := sources[targetPath]
				if !ok {
					imported, err = r.store.Read(target)
					if err != nil {
						return nil, err
					}
					sources[targetPath] = imported
				}
				targetID, err = addFile(imported)
				if err != nil {
					return nil, err
				}
			}

			if err := graph.AddEdge(id, targetID, imp); err != nil {
				return nil, err
			}
		}
	}

	return graph, nil
}

// scanImports extracts the import strings of a file in sorted order.
func (r *Resolver) scanImports(kind domain.CompilerKind, file *domain.SourceFile) []string {
	var imports []string
	content := file.Content

	if kind == domain.CompilerVyper {
		for _, m := range vyperImportRe.FindAllSubmatch(content, -1) {
			switch {
			case len(m[1]) > 0:
				imports = append(imports, vyperModuleToPath(string(m[1])))
			case len(m[2]) > 0:
				// `from X import Y` first reads as module Y inside package
				// X; resolution falls back to X itself when X/Y.vy does not
				// exist.
				module := string(m[2])
				if !strings.HasSuffix(module, ".") {
					module += "."
				}
				imports = append(imports, vyperModuleToPath(module+string(m[3])))
			}
		}
	} else {
		for _, m := range solidityImportRe.FindAllSubmatch(content, -1) {
			imports = append(imports, string(m[1]))
		}
	}

	sort.Strings(imports)
	return imports
}

// vyperModuleToPath maps a dotted module reference to a file path. Leading
// dots denote relative imports, one level up per extra dot.
func vyperModuleToPath(module string) string {
	ups := 0
	for ups < len(module) && module[ups] == '.' {
		ups++
	}
	rest := strings.ReplaceAll(module[ups:], ".", "/") + ".vy"
	if ups == 0 {
		return rest
	}
	return strings.Repeat("../", ups-1) + "./" + rest
}

// scanPragma extracts the file's version constraint. Malformed constraint
// strings are treated as absent rather than fatal: the compiler itself
// rejects truly invalid pragma syntax later, so the scan stays lenient.
func (r *Resolver) scanPragma(kind domain.CompilerKind, file *domain.SourceFile) domain.VersionConstraint {
	re := solidityPragmaRe
	if kind == domain.CompilerVyper {
		re = vyperPragmaRe
	}
	m := re.FindSubmatch(file.Content)
	if m == nil {
		return domain.VersionConstraint{}
	}
	vc, err := domain.ParseVersionConstraint(string(m[1]))
	if err != nil {
		return domain.VersionConstraint{}
	}
	return vc
}

// resolveImport maps an import string to a canonical path. Relative imports
// resolve against the importing file's directory; everything else goes
// through the remapping table (longest prefix wins) and then the include
// path candidates, where more than one hit is ambiguous. Vyper from-imports
// are retried against the enclosing module when the joined path has no file.
func (r *Resolver) resolveImport(
	project *domain.Project,
	sources map[domain.InternedString]*domain.SourceFile,
	from, imp string,
) (string, error) {
	target, err := r.searchImport(project, sources, from, imp)
	if err != nil && errors.Is(err, domain.ErrUnresolvedImport) {
		if fallback, ok := vyperEnclosingModule(project.Compiler, imp); ok {
			if t, ferr := r.searchImport(project, sources, from, fallback); ferr == nil {
				return t, nil
			}
		}
	}
	return target, err
}

// vyperEnclosingModule rewrites a from-import candidate to its enclosing
// module file: `from lib import utils` names lib/utils.vy when utils is a
// module and lib.vy when utils is a declaration inside lib.
func vyperEnclosingModule(kind domain.CompilerKind, imp string) (string, bool) {
	if kind != domain.CompilerVyper || !strings.HasSuffix(imp, ".vy") {
		return "", false
	}
	trimmed := strings.TrimSuffix(imp, ".vy")
	i := strings.LastIndex(trimmed, "/")
	if i <= 0 {
		return "", false
	}
	parent := trimmed[:i]
	if parent == "." || parent == ".." || strings.HasSuffix(parent, "/..") {
		return "", false
	}
	return parent + ".vy", true
}

func (r *Resolver) searchImport(
	project *domain.Project,
	sources map[domain.InternedString]*domain.SourceFile,
	from, imp string,
) (string, error) {
	exists := func(p string) bool {
		if _, ok := sources[domain.NewInternedString(p)]; ok {
			return true
		}
		return r.store.Exists(p)
	}

	if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
		target := path.Join(path.Dir(from), imp)
		if !exists(target) {
			return "", unresolved(from, imp)
		}
		return target, nil
	}

	if remapped, ok := domain.ApplyRemappings(project.Remappings, imp); ok {
		target := path.Clean(remapped)
		if !exists(target) {
			return "", unresolved(from, imp)
		}
		return target, nil
	}

	candidates := []string{path.Clean(imp)}
	for _, include := range project.IncludePaths {
		candidates = append(candidates, path.Join(include, imp))
	}

	var found []string
	for _, c := range candidates {
		if exists(c) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return "", unresolved(from, imp)
	case 1:
		return found[0], nil
	default:
		err := zerr.With(zerr.Wrap(domain.ErrAmbiguousImport, "import matches multiple files"), "from", from)
		err = zerr.With(err, "import", imp)
		return "", zerr.With(err, "candidates", strings.Join(found, ", "))
	}
}

func unresolved(from, imp string) error {
	err := zerr.With(zerr.Wrap(domain.ErrUnresolvedImport, "import does not match any file"), "from", from)
	return zerr.With(err, "import", imp)
}
