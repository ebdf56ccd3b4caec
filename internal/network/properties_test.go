package network

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vanshika/recipenet/internal/domain"
)

var propertyIDs = []string{"garlic", "onion", "leek", "tofu", "chili", "sesame", "ghost"}

func drawNodes(t *rapid.T) []domain.Node {
	var nodes []domain.Node
	// "ghost" never gets a row so it stays dangling.
	for _, id := range propertyIDs[:len(propertyIDs)-1] {
		if rapid.Bool().Draw(t, "has_"+id) {
			nodes = append(nodes, domain.Node{ID: id, Count: rapid.IntRange(0, 50).Draw(t, "count_"+id)})
		}
	}
	return nodes
}

func drawEdges(t *rapid.T) []domain.Edge {
	gen := rapid.Custom(func(t *rapid.T) domain.Edge {
		return domain.Edge{
			Source: rapid.SampledFrom(propertyIDs).Draw(t, "source"),
			Target: rapid.SampledFrom(propertyIDs).Draw(t, "target"),
			Weight: float64(rapid.IntRange(1, 800).Draw(t, "weight")),
		}
	})
	return rapid.SliceOfN(gen, 0, 30).Draw(t, "edges")
}

func TestSelectSubgraphProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nodes := drawNodes(t)
		edges := drawEdges(t)
		maxEdges := rapid.IntRange(1, 40).Draw(t, "maxEdges")
		minCount := rapid.IntRange(0, 60).Draw(t, "minCount")

		sub := SelectSubgraph(nodes, edges, maxEdges, minCount)

		require.LessOrEqual(t, len(sub.Edges), maxEdges)
		for _, id := range sub.Nodes() {
			require.GreaterOrEqual(t, sub.Count(id), minCount, "node %s", id)
		}
		for _, e := range sub.Edges {
			require.True(t, sub.Has(e.Source) && sub.Has(e.Target), "edge %v has an invisible endpoint", e)
		}
		for i := 1; i < len(sub.Edges); i++ {
			require.LessOrEqual(t, sub.Edges[i].Weight, sub.Edges[i-1].Weight, "edges not weight ordered at %d", i)
		}

		again := SelectSubgraph(nodes, edges, maxEdges, minCount)
		require.Equal(t, sub.Edges, again.Edges)
		require.Equal(t, sub.Nodes(), again.Nodes())
	})
}

func TestSelectSubgraphMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nodes := drawNodes(t)
		edges := drawEdges(t)
		maxEdges := rapid.IntRange(1, 40).Draw(t, "maxEdges")
		minCount := rapid.IntRange(0, 60).Draw(t, "minCount")
		bump := rapid.IntRange(1, 20).Draw(t, "bump")

		base := SelectSubgraph(nodes, edges, maxEdges, minCount)

		stricter := SelectSubgraph(nodes, edges, maxEdges, minCount+bump)
		require.LessOrEqual(t, stricter.NodeCount(), base.NodeCount(), "raising minCount grew the node set")

		wider := SelectSubgraph(nodes, edges, maxEdges+bump, minCount)
		require.GreaterOrEqual(t, len(wider.Edges), len(base.Edges), "raising maxEdges shrank the edge list")
	})
}

func TestProjectTotality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sub := SelectSubgraph(drawNodes(t), drawEdges(t), 40, 0)
		adj := NewAdjacency(sub)
		if len(adj.Nodes()) == 0 {
			return
		}
		hovered := rapid.SampledFrom(adj.Nodes()).Draw(t, "hovered")

		states := Project(adj, HoverOn(hovered))
		require.Len(t, states, sub.NodeCount())
		for id, state := range states {
			require.Contains(t, []HighlightState{Emphasized, Dimmed}, state, "node %s while hovering", id)
		}
		require.Equal(t, states, Project(adj, HoverOn(hovered)))

		h := NewHighlighter(adj)
		h.Enter(hovered)
		for id, state := range h.Leave() {
			require.Equal(t, Neutral, state, "node %s after leave", id)
		}
	})
}
