// Package dataset reads and writes category graphs kept outside the graph
// database: JSON or YAML documents and SQLite files.
package dataset

import (
	"errors"
	"fmt"

	"github.com/vanshika/recipenet/internal/domain"
)

var (
	// ErrDatasetNotFound is returned when the dataset path does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrCategoryNotFound is returned by Load for keys the dataset does not hold.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUnsupportedFormat is returned for paths whose extension has no codec.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Document is the on-disk layout shared by the JSON and YAML codecs.
type Document struct {
	Categories []CategoryRecord `json:"categories" yaml:"categories"`
}

// CategoryRecord holds one category's tables.
type CategoryRecord struct {
	Key   KeyRecord    `json:"key" yaml:"key"`
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
	Edges []EdgeRecord `json:"edges" yaml:"edges"`
}

// KeyRecord is the two-part category key.
type KeyRecord struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

// NodeRecord is one node table row.
type NodeRecord struct {
	ID    string `json:"id" yaml:"id"`
	Count int    `json:"count" yaml:"count"`
}

// EdgeRecord is one edge table row.
type EdgeRecord struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// NewDocument converts domain categories into their on-disk form.
func NewDocument(categories []domain.Category) Document {
	doc := Document{Categories: make([]CategoryRecord, 0, len(categories))}
	for _, c := range categories {
		rec := CategoryRecord{
			Key:   KeyRecord{Primary: c.Key.Primary, Secondary: c.Key.Secondary},
			Nodes: make([]NodeRecord, 0, len(c.Nodes)),
			Edges: make([]EdgeRecord, 0, len(c.Edges)),
		}
		for _, n := range c.Nodes {
			rec.Nodes = append(rec.Nodes, NodeRecord{ID: n.ID, Count: n.Count})
		}
		for _, e := range c.Edges {
			rec.Edges = append(rec.Edges, EdgeRecord{Source: e.Source, Target: e.Target, Weight: e.Weight})
		}
		doc.Categories = append(doc.Categories, rec)
	}
	return doc
}

// ToCategories validates the document and converts it to domain categories,
// preserving document order.
func (d Document) ToCategories() ([]domain.Category, error) {
	seen := make(map[domain.CategoryKey]struct{}, len(d.Categories))
	out := make([]domain.Category, 0, len(d.Categories))

	for i, rec := range d.Categories {
		key := domain.CategoryKey{Primary: rec.Key.Primary, Secondary: rec.Key.Secondary}
		if key.IsZero() {
			return nil, fmt.Errorf("category %d: key is required", i)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("category %s: duplicate key", key.Label())
		}
		seen[key] = struct{}{}

		c := domain.Category{
			Key:   key,
			Nodes: make([]domain.Node, 0, len(rec.Nodes)),
			Edges: make([]domain.Edge, 0, len(rec.Edges)),
		}
		for _, n := range rec.Nodes {
			if n.Count < 0 {
				return nil, fmt.Errorf("category %s: node %q has negative count %d", key.Label(), n.ID, n.Count)
			}
			c.Nodes = append(c.Nodes, domain.Node{ID: n.ID, Count: n.Count})
		}
		for j, e := range rec.Edges {
			if e.Weight <= 0 {
				return nil, fmt.Errorf("category %s: edge %d (%s-%s) has non-positive weight %v", key.Label(), j, e.Source, e.Target, e.Weight)
			}
			c.Edges = append(c.Edges, domain.Edge{Source: e.Source, Target: e.Target, Weight: e.Weight})
		}
		out = append(out, c)
	}
	return out, nil
}
