package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// ImportEdge records that one file imports another, together with the import
// string as written in the source before remapping.
type ImportEdge struct {
	From         InternedString
	To           InternedString
	ImportString string
}

// Graph is the resolved import graph over source files. Nodes live in an
// arena indexed by a dense integer id; traversals track node state in slices
// keyed by id rather than on the call stack, so cyclic and deep projects
// cannot blow the stack or loop forever.
//
// Edges may form cycles, including self-imports; that is legal in this
// domain. Every edge's endpoints are guaranteed to exist in the node set.
type Graph struct {
	nodes       []*SourceFile
	constraints []VersionConstraint
	index       map[InternedString]int

	out   [][]int // out[i]: ids imported by node i
	in    [][]int // in[i]: ids importing node i
	edges []ImportEdge
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[InternedString]int)}
}

// AddNode inserts a source file with its (possibly zero) version constraint
// and returns its node id. Adding the same path twice is an error: the
// resolver canonicalizes paths before insertion, so a duplicate signals a
// resolver bug.
func (g *Graph) AddNode(file *SourceFile, vc VersionConstraint) (int, error) {
	if _, exists := g.index[file.Path]; exists {
		return 0, zerr.With(zerr.Wrap(ErrDuplicateSource, "path already in graph"), "path", file.Path.String())
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, file)
	g.constraints = append(g.constraints, vc)
	g.index[file.Path] = id
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id, nil
}

// AddEdge records an import from one node to another. Both endpoints must
// already be in the graph. Parallel edges between the same pair are
// collapsed; the first import string wins.
func (g *Graph) AddEdge(from, to int, importString string) error {
	if from < 0 || from >= len(g.nodes) || to < 0 || to >= len(g.nodes) {
		return zerr.With(zerr.Wrap(ErrUnknownNode, "edge endpoint outside graph"), "from", from)
	}
	for _, existing := range g.out[from] {
		if existing == to {
			return nil
		}
	}
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
	g.edges = append(g.edges, ImportEdge{
		From:         g.nodes[from].Path,
		To:           g.nodes[to].Path,
		ImportString: importString,
	})
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns the source file with the given id.
func (g *Graph) Node(id int) *SourceFile { return g.nodes[id] }

// Constraint returns the version constraint of the node with the given id.
func (g *Graph) Constraint(id int) VersionConstraint { return g.constraints[id] }

// Lookup returns the node id for a path.
func (g *Graph) Lookup(path InternedString) (int, bool) {
	id, ok := g.index[path]
	return id, ok
}

// Edges returns all import edges in insertion order.
func (g *Graph) Edges() []ImportEdge { return g.edges }

// Imports returns the ids of all files transitively imported by the given
// node, excluding the node itself unless it participates in a cycle back to
// itself. Results are sorted for determinism.
func (g *Graph) Imports(id int) []int {
	return g.closure(id, g.out)
}

// Importers returns the ids of all files that transitively import the given
// node. Results are sorted for determinism.
func (g *Graph) Importers(id int) []int {
	return g.closure(id, g.in)
}

func (g *Graph) closure(start int, adj [][]int) []int {
	seen := make([]bool, len(g.nodes))
	stack := append([]int(nil), adj[start]...)
	var result []int
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
		stack = append(stack, adj[id]...)
	}
	sort.Ints(result)
	return result
}

// Components partitions the node set into connected components treating
// import edges as undirected, since a compiler must see a whole import
// closure together. Components and their members are ordered by node id,
// which the resolver assigns in a deterministic order.
func (g *Graph) Components() [][]int {
	seen := make([]bool, len(g.nodes))
	var components [][]int
	for start := range g.nodes {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, id)
			for _, next := range g.out[id] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
			for _, next := range g.in[id] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
		sort.Ints(comp)
		components = append(components, comp)
	}
	return components
}
