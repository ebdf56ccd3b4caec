package domain

// CategorySummary represents lightweight category information for list endpoints.
type CategorySummary struct {
	Key       CategoryKey
	NodeCount int
	EdgeCount int
}

// Summarize builds the list view of a loaded category.
func (c Category) Summarize() CategorySummary {
	return CategorySummary{
		Key:       c.Key,
		NodeCount: len(c.Nodes),
		EdgeCount: len(c.Edges),
	}
}
