// Package kin builds the undirected relationship graph over family records.
//
// Every person is a node keyed by name, and each parent/child relation is a
// single undirected edge. Adjacency lists keep insertion order, which gives
// the graph a documented, deterministic neighbor order: a record's father
// first, then its mother, then its children in input order, with records
// processed in dataset order. BFS tie-breaking between equal-length paths
// follows directly from this order.
package kin

import (
	"slices"

	"github.com/ahertel/kintrace/pkg/family"
)

// Graph is an undirected relationship graph with insertion-ordered
// adjacency lists. Edges are always symmetric: adding A-B makes B a
// neighbor of A and A a neighbor of B. Duplicate edges are ignored.
//
// The zero value is not usable - use New or Build to create an instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	neighbors map[string][]string
	index     map[string]map[string]struct{} // adjacency membership for de-duplication
	people    []string                       // node insertion order
	edges     [][2]string                    // edge insertion order, first endpoint first
}

// New creates an empty relationship graph.
func New() *Graph {
	return &Graph{
		neighbors: make(map[string][]string),
		index:     make(map[string]map[string]struct{}),
	}
}

// Build constructs the relationship graph for a canonical dataset.
//
// Every record's name becomes a node even when it has no relations at all.
// Each known parent and each child contributes one undirected edge, which
// implicitly creates a node for people referenced without a record of their
// own. Build is total: it cannot fail on records that passed the
// family.Validate boundary, and it never mutates its input.
func Build(records []family.Record) *Graph {
	g := New()
	for _, r := range records {
		g.AddPerson(r.Name)
		if r.HasFather() {
			g.AddKinship(r.Name, r.Father)
		}
		if r.HasMother() {
			g.AddKinship(r.Name, r.Mother)
		}
		for _, child := range r.Children {
			g.AddKinship(r.Name, child)
		}
	}
	return g
}

// AddPerson ensures a node exists for name.
// Empty names are ignored.
func (g *Graph) AddPerson(name string) {
	if name == "" {
		return
	}
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = make(map[string]struct{})
	g.people = append(g.people, name)
}

// AddKinship adds an undirected edge between two people, creating nodes as
// needed. Self-edges, empty names, and edges that already exist (in either
// direction) are ignored.
func (g *Graph) AddKinship(a, b string) {
	if a == "" || b == "" || a == b {
		return
	}
	g.AddPerson(a)
	g.AddPerson(b)
	if _, dup := g.index[a][b]; dup {
		return
	}
	g.index[a][b] = struct{}{}
	g.index[b][a] = struct{}{}
	g.neighbors[a] = append(g.neighbors[a], b)
	g.neighbors[b] = append(g.neighbors[b], a)
	g.edges = append(g.edges, [2]string{a, b})
}

// HasPerson reports whether name is a node in the graph.
func (g *Graph) HasPerson(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Neighbors returns the people directly related to name, in insertion order.
// Returns nil if the person is unknown or has no relations. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Neighbors(name string) []string {
	return g.neighbors[name]
}

// Related reports whether an edge exists between two people.
// The check is symmetric.
func (g *Graph) Related(a, b string) bool {
	_, ok := g.index[a][b]
	return ok
}

// People returns all node names in insertion order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) People() []string {
	return slices.Clone(g.people)
}

// PersonCount returns the number of nodes in the graph.
func (g *Graph) PersonCount() int { return len(g.people) }

// Edges returns a copy of all undirected edges in insertion order.
// Each edge lists the endpoint that introduced it first.
func (g *Graph) Edges() [][2]string { return slices.Clone(g.edges) }

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of people directly related to name.
// Returns 0 if the person is unknown.
func (g *Graph) Degree(name string) int { return len(g.neighbors[name]) }
