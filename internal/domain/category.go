package domain

import "fmt"

// CategoryKey is the composite two-part label a graph instance is stored under,
// e.g. {"Soup", "Korean"}.
type CategoryKey struct {
	Primary   string
	Secondary string
}

// Label renders the key the way the dashboard shows it: "Primary (Secondary)".
func (k CategoryKey) Label() string {
	return fmt.Sprintf("%s (%s)", k.Primary, k.Secondary)
}

func (k CategoryKey) String() string {
	return k.Label()
}

// IsZero reports whether neither part of the key is set.
func (k CategoryKey) IsZero() bool {
	return k.Primary == "" && k.Secondary == ""
}

// Category is one graph instance: the node and edge tables for a single key.
type Category struct {
	Key   CategoryKey
	Nodes []Node
	Edges []Edge
}
