package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		primaries   = flag.String("primaries", strings.Join(cfg.Primaries, ","), "comma separated dish kinds")
		secondaries = flag.String("secondaries", strings.Join(cfg.Secondaries, ","), "comma separated cuisines")
		recipes     = flag.Int("recipes", cfg.RecipesPerKind, "recipes simulated per category")
		minIngr     = flag.Int("min-ingredients", cfg.MinIngredients, "minimum ingredients per recipe")
		maxIngr     = flag.Int("max-ingredients", cfg.MaxIngredients, "maximum ingredients per recipe")
		skew        = flag.Float64("skew", cfg.Skew, "Zipf exponent of ingredient popularity (> 1)")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		output      = flag.String("output", "graphs.json", "output file; .json, .yaml, .yml, .db or .sqlite")
		format      = flag.String("stdout", "", "write the dataset to stdout as json or yaml instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		Primaries:      splitList(*primaries),
		Secondaries:    splitList(*secondaries),
		RecipesPerKind: *recipes,
		MinIngredients: *minIngr,
		MaxIngredients: *maxIngr,
		Skew:           *skew,
		Seed:           *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	categories, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *format != "" {
		if err := dataset.Encode(os.Stdout, dataset.NewDocument(categories), dataset.Format(*format)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dataset.WriteFile(*output, categories); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %s into %s\n", generator.Summary(categories), *output)
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
