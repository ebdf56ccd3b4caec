package generator

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/vanshika/recipenet/internal/domain"
)

// Generator synthesises recipe collections and derives each category's
// ingredient counts and co-occurrence edges from them.
type Generator struct {
	cfg         Config
	rand        *rand.Rand
	ingredients []string
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if len(cfg.Primaries) == 0 {
		cfg.Primaries = def.Primaries
	}
	if len(cfg.Secondaries) == 0 {
		cfg.Secondaries = def.Secondaries
	}
	if cfg.RecipesPerKind <= 0 {
		cfg.RecipesPerKind = def.RecipesPerKind
	}
	if cfg.MinIngredients <= 1 {
		cfg.MinIngredients = def.MinIngredients
	}
	if cfg.MaxIngredients < cfg.MinIngredients {
		cfg.MaxIngredients = cfg.MinIngredients
	}
	if cfg.Skew <= 1 {
		cfg.Skew = def.Skew
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ingredients := defaultIngredients()
	if cfg.MaxIngredients > len(ingredients) {
		cfg.MaxIngredients = len(ingredients)
	}
	if cfg.MinIngredients > cfg.MaxIngredients {
		cfg.MinIngredients = cfg.MaxIngredients
	}

	return &Generator{
		cfg:         cfg,
		rand:        rand.New(rand.NewSource(cfg.Seed)),
		ingredients: ingredients,
	}
}

// Config returns the effective configuration after defaults were applied.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate builds one category per primary/secondary pair. It respects context
// cancellation.
func (g *Generator) Generate(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, len(g.cfg.Primaries)*len(g.cfg.Secondaries))
	for _, primary := range g.cfg.Primaries {
		for _, secondary := range g.cfg.Secondaries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			key := domain.CategoryKey{Primary: primary, Secondary: secondary}
			categories = append(categories, g.category(key))
		}
	}
	return categories, nil
}

type pair struct {
	a, b string
}

func (g *Generator) category(key domain.CategoryKey) domain.Category {
	// Each category shuffles popularity so staples differ between cuisines.
	ranked := slices.Clone(g.ingredients)
	g.rand.Shuffle(len(ranked), func(i, j int) { ranked[i], ranked[j] = ranked[j], ranked[i] })
	zipf := rand.NewZipf(g.rand, g.cfg.Skew, 1, uint64(len(ranked)-1))

	counts := make(map[string]int)
	var seen []string
	cooccur := make(map[pair]int)
	var pairs []pair

	for r := 0; r < g.cfg.RecipesPerKind; r++ {
		recipe := g.recipe(ranked, zipf)
		for _, ing := range recipe {
			if counts[ing] == 0 {
				seen = append(seen, ing)
			}
			counts[ing]++
		}
		for i := 0; i < len(recipe); i++ {
			for j := i + 1; j < len(recipe); j++ {
				p := pair{a: recipe[i], b: recipe[j]}
				if p.a > p.b {
					p.a, p.b = p.b, p.a
				}
				if cooccur[p] == 0 {
					pairs = append(pairs, p)
				}
				cooccur[p]++
			}
		}
	}

	c := domain.Category{
		Key:   key,
		Nodes: make([]domain.Node, 0, len(seen)),
		Edges: make([]domain.Edge, 0, len(pairs)),
	}
	for _, ing := range seen {
		c.Nodes = append(c.Nodes, domain.Node{ID: ing, Count: counts[ing]})
	}
	for _, p := range pairs {
		c.Edges = append(c.Edges, domain.Edge{Source: p.a, Target: p.b, Weight: float64(cooccur[p])})
	}
	return c
}

// recipe draws a set of distinct ingredients, biased towards popular ones.
func (g *Generator) recipe(ranked []string, zipf *rand.Zipf) []string {
	size := g.cfg.MinIngredients
	if spread := g.cfg.MaxIngredients - g.cfg.MinIngredients; spread > 0 {
		size += g.rand.Intn(spread + 1)
	}

	picked := make(map[string]struct{}, size)
	recipe := make([]string, 0, size)
	for attempts := 0; len(recipe) < size && attempts < size*20; attempts++ {
		ing := ranked[zipf.Uint64()]
		if _, dup := picked[ing]; dup {
			continue
		}
		picked[ing] = struct{}{}
		recipe = append(recipe, ing)
	}
	return recipe
}

func defaultIngredients() []string {
	return []string{
		"garlic", "onion", "green onion", "soy sauce", "sesame oil", "ginger", "salt", "black pepper",
		"sugar", "red pepper flakes", "gochujang", "doenjang", "tofu", "kimchi", "pork belly", "beef brisket",
		"chicken thigh", "egg", "rice", "potato", "carrot", "zucchini", "cabbage", "napa cabbage",
		"spinach", "bean sprouts", "shiitake", "enoki", "anchovy stock", "kelp", "fish sauce", "oyster sauce",
		"rice wine", "vinegar", "chili", "cilantro", "basil", "tomato", "butter", "olive oil",
		"parmesan", "cream", "flour", "noodles", "udon", "miso", "dashi", "mirin",
		"lemon", "lime", "cucumber", "radish", "seaweed", "shrimp", "squid", "clam",
		"sesame seeds", "honey", "peanut", "star anise",
	}
}

// Summary reports the size of a generated dataset.
func Summary(categories []domain.Category) string {
	nodes, edges := 0, 0
	for _, c := range categories {
		nodes += len(c.Nodes)
		edges += len(c.Edges)
	}
	return fmt.Sprintf("%d categories, %d nodes, %d edges", len(categories), nodes, edges)
}
