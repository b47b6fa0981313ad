// Package lineage computes shortest-path relationship trees over a kin.Graph
// and annotates family records with the links that lie on them.
//
// Trace runs a breadth-first search from a chosen root and records, for every
// reachable person, the neighbor one step closer to the root. Annotate uses
// that predecessor map to mark each parent/child field that is part of the
// direct lineage. Because the graph's neighbor lists have a documented
// canonical order (see package kin), the tree picked among equal-length
// shortest paths is deterministic.
package lineage

import (
	"errors"

	"github.com/ahertel/kintrace/pkg/kin"
)

// ErrRootNotFound is returned by [Trace] when the root person has no node in
// the graph. Callers treat this as a soft failure: warn and emit the input
// unmarked rather than aborting.
var ErrRootNotFound = errors.New("lineage: root person not found in graph")

// Predecessors maps each person reachable from the root to the neighbor one
// step closer to the root on a shortest path. The root itself maps to the
// empty string. People missing from the map are unreachable.
type Predecessors map[string]string

// Of returns the predecessor of name and whether name is reachable.
// For the root, the predecessor is the empty string.
func (p Predecessors) Of(name string) (string, bool) {
	pred, ok := p[name]
	return pred, ok
}

// Reachable reports whether name was reached by the traversal.
func (p Predecessors) Reachable(name string) bool {
	_, ok := p[name]
	return ok
}

// Linked reports whether the edge between a and b lies on the shortest-path
// tree. The predecessor map is directed toward the root, but a lineage edge
// may be traversed in either direction relative to which endpoint is closer,
// so both directions are checked.
func (p Predecessors) Linked(a, b string) bool {
	if pa, ok := p[a]; ok && pa == b {
		return true
	}
	if pb, ok := p[b]; ok && pb == a {
		return true
	}
	return false
}

// Trace runs a breadth-first search from root and returns the predecessor
// map of the resulting shortest-path tree.
//
// Every node reachable from root gets exactly one predecessor: the first
// neighbor that discovered it, which by the BFS layer property lies on a
// minimum-length path. Ties between equal-length paths are broken by the
// graph's neighbor order. Unreachable nodes are absent from the map.
//
// Returns ErrRootNotFound if root is not a node in g.
func Trace(g *kin.Graph, root string) (Predecessors, error) {
	if !g.HasPerson(root) {
		return nil, ErrRootNotFound
	}

	preds := Predecessors{root: ""}
	queue := []string{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, nbr := range g.Neighbors(current) {
			if _, seen := preds[nbr]; seen {
				continue
			}
			preds[nbr] = current
			queue = append(queue, nbr)
		}
	}

	return preds, nil
}

// Depths returns the hop distance from the root for every reachable person,
// derived by following predecessor chains. The root has depth 0.
func (p Predecessors) Depths() map[string]int {
	depths := make(map[string]int, len(p))
	var walk func(name string) int
	walk = func(name string) int {
		if d, ok := depths[name]; ok {
			return d
		}
		pred := p[name]
		if pred == "" {
			depths[name] = 0
			return 0
		}
		d := walk(pred) + 1
		depths[name] = d
		return d
	}
	for name := range p {
		walk(name)
	}
	return depths
}

// PathToRoot returns the shortest path from person back to the root,
// inclusive on both ends. Returns nil if person is unreachable.
func (p Predecessors) PathToRoot(person string) []string {
	if !p.Reachable(person) {
		return nil
	}
	var path []string
	for cur := person; ; {
		path = append(path, cur)
		pred := p[cur]
		if pred == "" {
			return path
		}
		cur = pred
	}
}
