package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/recipenet/internal/domain"
)

func smallConfig() Config {
	return Config{
		Primaries:      []string{"Soup", "Stew"},
		Secondaries:    []string{"Korean"},
		RecipesPerKind: 50,
		MinIngredients: 3,
		MaxIngredients: 6,
		Skew:           1.3,
		Seed:           7,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestGenerateTablesAreConsistent(t *testing.T) {
	categories, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)

	for _, c := range categories {
		require.False(t, c.Key.IsZero(), "category with empty key")
		counts := domain.NodeCounts(c.Nodes)
		for _, n := range c.Nodes {
			assert.True(t, n.Count > 0 && n.Count <= 50, "%s: node %s has count %d", c.Key, n.ID, n.Count)
		}
		for _, e := range c.Edges {
			assert.Positive(t, e.Weight, "%s: edge %s-%s", c.Key, e.Source, e.Target)
			assert.NotEqual(t, e.Source, e.Target, "%s: self-loop", c.Key)
			// A pair cannot co-occur more often than either ingredient appears.
			assert.LessOrEqual(t, int(e.Weight), counts[e.Source], "%s: edge %s-%s", c.Key, e.Source, e.Target)
			assert.LessOrEqual(t, int(e.Weight), counts[e.Target], "%s: edge %s-%s", c.Key, e.Source, e.Target)
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(smallConfig()).Generate(ctx)
	assert.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	cfg := New(Config{Seed: 1}).Config()

	assert.Equal(t, DefaultConfig().RecipesPerKind, cfg.RecipesPerKind)
	assert.NotEmpty(t, cfg.Primaries)
	assert.Greater(t, cfg.Skew, 1.0)
}
