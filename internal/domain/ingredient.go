package domain

// Node is an ingredient together with how often it occurs in the category's recipes.
type Node struct {
	ID    string
	Count int
}

// Edge is a weighted co-occurrence between two ingredients. The source table may
// contain several edges for the same pair; they are kept distinct.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// NodeCounts indexes a node table by id. Later duplicates overwrite earlier ones.
func NodeCounts(nodes []Node) map[string]int {
	counts := make(map[string]int, len(nodes))
	for _, n := range nodes {
		counts[n.ID] = n.Count
	}
	return counts
}
