package network

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Adjacency is the undirected neighbourhood structure of a rendered subgraph.
// Node ids map to gonum ids in discovery order.
type Adjacency struct {
	g     *simple.UndirectedGraph
	index map[string]int64
	names []string
}

// NewAdjacency builds the adjacency of sub. Multi-edges collapse to one link and
// self-loops add no neighbour.
func NewAdjacency(sub Subgraph) *Adjacency {
	adj := &Adjacency{
		g:     simple.NewUndirectedGraph(),
		index: make(map[string]int64, sub.NodeCount()),
	}
	for _, id := range sub.order {
		adj.add(id)
	}
	for _, e := range sub.Edges {
		from, to := adj.add(e.Source), adj.add(e.Target)
		if from == to {
			continue
		}
		adj.g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
	return adj
}

func (a *Adjacency) add(id string) int64 {
	if n, ok := a.index[id]; ok {
		return n
	}
	n := int64(len(a.names))
	a.index[id] = n
	a.names = append(a.names, id)
	a.g.AddNode(simple.Node(n))
	return n
}

// Nodes returns every node id in discovery order.
func (a *Adjacency) Nodes() []string {
	return slices.Clone(a.names)
}

// Has reports whether id is part of the graph.
func (a *Adjacency) Has(id string) bool {
	_, ok := a.index[id]
	return ok
}

// Neighbors returns the ids directly linked to id, in discovery order. Unknown ids
// have no neighbours.
func (a *Adjacency) Neighbors(id string) []string {
	n, ok := a.index[id]
	if !ok {
		return nil
	}
	var ids []int64
	it := a.g.From(n)
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	slices.Sort(ids)

	neighbors := make([]string, 0, len(ids))
	for _, nid := range ids {
		neighbors = append(neighbors, a.names[nid])
	}
	return neighbors
}

// Degree returns the number of distinct neighbours of id.
func (a *Adjacency) Degree(id string) int {
	n, ok := a.index[id]
	if !ok {
		return 0
	}
	return a.g.From(n).Len()
}

// Components returns the number of connected components.
func (a *Adjacency) Components() int {
	if len(a.names) == 0 {
		return 0
	}
	return len(topo.ConnectedComponents(a.g))
}
