package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/graph"
)

// ErrCategoryNotFound is returned when no category node matches the requested key.
var ErrCategoryNotFound = errors.New("category not found")

// Repository stores category graphs in Neo4j. A category is a (:Category) node
// linked to its (:Ingredient) nodes through HAS_INGREDIENT {count}; co-occurrence
// edges are CO_OCCURS relationships tagged with the category label and their
// position in the source table.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// UpsertCategory replaces the node and edge tables stored for c.Key in a single
// transaction. position fixes where the category appears in listings.
func (r *Repository) UpsertCategory(ctx context.Context, c domain.Category, position int) error {
	if c.Key.IsZero() {
		return errors.New("category key is required")
	}

	label := c.Key.Label()
	params := map[string]any{
		"primary":   c.Key.Primary,
		"secondary": c.Key.Secondary,
		"label":     label,
		"position":  position,
		"nodes":     nodeParams(c.Nodes),
	}
	edges := map[string]any{
		"label": label,
		"edges": edgeParams(c.Edges),
	}
	_, err := r.client.ExecuteWrite(ctx,
		graph.Statement{Cypher: upsertCategoryCypher, Params: params},
		graph.Statement{Cypher: replaceCooccurrenceCypher, Params: edges},
	)
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", label, err)
	}
	return nil
}

// ListCategories returns every stored category key in listing order.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.CategoryKey, error) {
	res, err := r.client.ExecuteRead(ctx, listCategoriesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list categories query: %w", err)
	}

	keys := make([]domain.CategoryKey, 0, len(res.Records))
	for _, record := range res.Records {
		keys = append(keys, domain.CategoryKey{
			Primary:   toString(record["primary"]),
			Secondary: toString(record["secondary"]),
		})
	}
	return keys, nil
}

// LoadCategory reads the node and edge tables of key. Edges come back in their
// original table order.
func (r *Repository) LoadCategory(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	params := map[string]any{
		"primary":   key.Primary,
		"secondary": key.Secondary,
		"label":     key.Label(),
	}

	nodeRes, err := r.client.ExecuteRead(ctx, categoryNodesCypher, params)
	if err != nil {
		return domain.Category{}, fmt.Errorf("category nodes query: %w", err)
	}
	if len(nodeRes.Records) == 0 {
		return domain.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, key.Label())
	}

	category := domain.Category{Key: key}
	for _, record := range nodeRes.Records {
		id := toString(record["id"])
		if id == "" {
			continue
		}
		category.Nodes = append(category.Nodes, domain.Node{
			ID:    id,
			Count: toInt(record["count"]),
		})
	}

	edgeRes, err := r.client.ExecuteRead(ctx, categoryEdgesCypher, params)
	if err != nil {
		return domain.Category{}, fmt.Errorf("category edges query: %w", err)
	}
	for _, record := range edgeRes.Records {
		category.Edges = append(category.Edges, domain.Edge{
			Source: toString(record["source"]),
			Target: toString(record["target"]),
			Weight: toFloat64(record["weight"]),
		})
	}

	return category, nil
}

func nodeParams(nodes []domain.Node) []map[string]any {
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, map[string]any{
			"id":    n.ID,
			"count": n.Count,
		})
	}
	return out
}

func edgeParams(edges []domain.Edge) []map[string]any {
	out := make([]map[string]any, 0, len(edges))
	for i, e := range edges {
		out = append(out, map[string]any{
			"seq":    i,
			"source": e.Source,
			"target": e.Target,
			"weight": e.Weight,
		})
	}
	return out
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toInt(val any) int {
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

const upsertCategoryCypher = `
MERGE (c:Category {primary: $primary, secondary: $secondary})
SET c.label = $label,
    c.position = coalesce(c.position, $position)
WITH c
OPTIONAL MATCH (c)-[old:HAS_INGREDIENT]->()
DELETE old
WITH DISTINCT c
UNWIND $nodes AS node
MERGE (i:Ingredient {name: node.id})
MERGE (c)-[h:HAS_INGREDIENT]->(i)
SET h.count = node.count
RETURN count(h) AS nodes
`

const replaceCooccurrenceCypher = `
OPTIONAL MATCH ()-[old:CO_OCCURS {category: $label}]->()
DELETE old
WITH count(*) AS removed
UNWIND $edges AS edge
MERGE (s:Ingredient {name: edge.source})
MERGE (t:Ingredient {name: edge.target})
CREATE (s)-[:CO_OCCURS {category: $label, seq: edge.seq, weight: edge.weight}]->(t)
RETURN count(*) AS edges
`

const listCategoriesCypher = `
MATCH (c:Category)
RETURN c.primary AS primary, c.secondary AS secondary
ORDER BY c.position, primary, secondary
`

const categoryNodesCypher = `
MATCH (c:Category {primary: $primary, secondary: $secondary})
OPTIONAL MATCH (c)-[h:HAS_INGREDIENT]->(i:Ingredient)
RETURN i.name AS id, h.count AS count
`

const categoryEdgesCypher = `
MATCH (s:Ingredient)-[r:CO_OCCURS {category: $label}]->(t:Ingredient)
RETURN s.name AS source, t.name AS target, r.weight AS weight
ORDER BY r.seq
`
