package network

import (
	"cmp"
	"slices"

	"github.com/vanshika/recipenet/internal/domain"
)

// Subgraph is the filtered, size-capped view of a category that is actually rendered.
type Subgraph struct {
	// Edges are the included edges in rendering order: weight descending, ties in
	// input order.
	Edges []domain.Edge
	// Counts holds the node table's count for every id it lists. Ids the table
	// does not list read as zero through Count.
	Counts map[string]int

	order   []string
	visible map[string]struct{}
}

// SelectSubgraph sorts edges by weight, keeps the first maxEdges of them and scans
// that list once, admitting nodes in discovery order. An edge is kept only when both
// of its endpoints are admitted; an endpoint is admitted the first time it is seen on
// an edge whose endpoints both have count >= minNodeCount. Edges that reference ids
// absent from nodes treat those ids as count 0.
//
// A maxEdges below one yields an empty subgraph.
func SelectSubgraph(nodes []domain.Node, edges []domain.Edge, maxEdges, minNodeCount int) Subgraph {
	sub := Subgraph{
		Counts:  domain.NodeCounts(nodes),
		visible: make(map[string]struct{}),
	}

	for _, e := range rankEdges(edges, maxEdges) {
		// Both endpoints are decided before either is admitted.
		if !sub.passes(e.Source, minNodeCount) || !sub.passes(e.Target, minNodeCount) {
			continue
		}
		sub.admit(e.Source)
		sub.admit(e.Target)
		sub.Edges = append(sub.Edges, e)
	}

	return sub
}

// rankEdges returns a weight-descending copy of edges truncated to limit.
func rankEdges(edges []domain.Edge, limit int) []domain.Edge {
	if limit <= 0 || len(edges) == 0 {
		return nil
	}
	ranked := slices.Clone(edges)
	slices.SortStableFunc(ranked, func(a, b domain.Edge) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Subgraph) passes(id string, minNodeCount int) bool {
	if s.Has(id) {
		return true
	}
	return s.Counts[id] >= minNodeCount
}

func (s *Subgraph) admit(id string) {
	if s.Has(id) {
		return
	}
	s.visible[id] = struct{}{}
	s.order = append(s.order, id)
}

// Has reports whether id is a visible node.
func (s Subgraph) Has(id string) bool {
	_, ok := s.visible[id]
	return ok
}

// Nodes returns the visible node ids in discovery order.
func (s Subgraph) Nodes() []string {
	return slices.Clone(s.order)
}

// NodeCount returns the number of visible nodes.
func (s Subgraph) NodeCount() int {
	return len(s.order)
}

// Count returns the node table count for id, zero for ids the table does not list.
func (s Subgraph) Count(id string) int {
	return s.Counts[id]
}

// IsEmpty reports whether nothing survived filtering.
func (s Subgraph) IsEmpty() bool {
	return len(s.Edges) == 0
}
