package generator

// Config drives the synthetic recipe generator.
type Config struct {
	Primaries      []string
	Secondaries    []string
	RecipesPerKind int
	MinIngredients int
	MaxIngredients int
	// Skew is the Zipf exponent of ingredient popularity; larger values favour
	// staple ingredients more strongly. Must be > 1.
	Skew float64
	Seed int64
}

// DefaultConfig returns settings that produce a dataset of a few thousand edges
// per category.
func DefaultConfig() Config {
	return Config{
		Primaries:      []string{"Soup", "Stew", "Stir-fry", "Salad", "Noodles"},
		Secondaries:    []string{"Korean", "Chinese", "Japanese", "Western"},
		RecipesPerKind: 400,
		MinIngredients: 4,
		MaxIngredients: 12,
		Skew:           1.2,
		Seed:           42,
	}
}
