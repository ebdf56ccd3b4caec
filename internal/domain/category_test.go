package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryKeyLabel(t *testing.T) {
	assert.Equal(t, "Soup (Korean)", CategoryKey{Primary: "Soup", Secondary: "Korean"}.Label())
	assert.Equal(t, "Soup (clear (light))", CategoryKey{Primary: "Soup", Secondary: "clear (light)"}.Label())
	assert.True(t, CategoryKey{}.IsZero())
	assert.False(t, CategoryKey{Secondary: "Korean"}.IsZero())
}

func TestNodeCounts(t *testing.T) {
	counts := NodeCounts([]Node{{ID: "garlic", Count: 3}, {ID: "onion", Count: 1}, {ID: "garlic", Count: 7}})

	assert.Equal(t, map[string]int{"garlic": 7, "onion": 1}, counts)
}

func TestCategorySummarize(t *testing.T) {
	c := Category{
		Key:   CategoryKey{Primary: "Soup", Secondary: "Korean"},
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{Source: "a", Target: "b", Weight: 1}},
	}

	summary := c.Summarize()

	assert.Equal(t, 2, summary.NodeCount)
	assert.Equal(t, 1, summary.EdgeCount)
	assert.Equal(t, c.Key, summary.Key)
}
