package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/metrics"
	"github.com/vanshika/recipenet/internal/network"
	"github.com/vanshika/recipenet/internal/repository"
)

var (
	// ErrUnknownCategory is returned when the requested key is not in the store.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNoCategories is returned when a default category is needed but the store is empty.
	ErrNoCategories = errors.New("no categories available")
)

// CategoryStore is the read contract required by the network service.
type CategoryStore interface {
	Categories(ctx context.Context) ([]domain.CategoryKey, error)
	Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error)
}

// reloader is implemented by stores that can re-read their backing data.
type reloader interface {
	Reload(ctx context.Context) error
}

// ViewParams selects a category and the filter applied to it. Label, when set, is
// matched against the labels of the listed categories. With neither Key nor Label
// the first category the store lists is used.
type ViewParams struct {
	Key          domain.CategoryKey
	Label        string
	MaxEdges     int
	MinNodeCount int
}

// NodeView is a visible node ready for rendering.
type NodeView struct {
	ID     string
	Label  string
	Title  string
	Count  int
	Degree int
}

// EdgeView is a visible edge ready for rendering.
type EdgeView struct {
	Source string
	Target string
	Weight float64
	Color  string
	Title  string
}

// View is the filtered network of one category.
type View struct {
	Key        domain.CategoryKey
	Label      string
	Params     ViewParams
	Subgraph   network.Subgraph
	Adjacency  *network.Adjacency
	Nodes      []NodeView
	Edges      []EdgeView
	Components int
}

// Projection is the highlight state of every visible node for one hover input.
type Projection struct {
	View   View
	Hover  network.Hover
	States map[string]network.HighlightState
}

// NetworkService loads category tables through a CategoryStore, caches them per key
// and builds filtered views on request.
type NetworkService struct {
	store  CategoryStore
	filter config.FilterConfig

	mu    sync.Mutex
	gen   uint64
	keys  []domain.CategoryKey
	cache map[domain.CategoryKey]domain.Category
}

// NewNetworkService constructs a NetworkService. filter supplies the MaxEdges
// default and upper bound.
func NewNetworkService(store CategoryStore, filter config.FilterConfig) *NetworkService {
	if filter.DefaultMaxEdges <= 0 {
		filter.DefaultMaxEdges = config.Default().Filter.DefaultMaxEdges
	}
	if filter.MaxEdgesLimit < filter.DefaultMaxEdges {
		filter.MaxEdgesLimit = filter.DefaultMaxEdges
	}
	return &NetworkService{
		store:  store,
		filter: filter,
		cache:  make(map[domain.CategoryKey]domain.Category),
	}
}

// Filter returns the filter bounds the service normalises against.
func (s *NetworkService) Filter() config.FilterConfig {
	return s.filter
}

// Categories lists the category keys in store order.
func (s *NetworkService) Categories(ctx context.Context) ([]domain.CategoryKey, error) {
	s.mu.Lock()
	if s.keys != nil {
		keys := append([]domain.CategoryKey(nil), s.keys...)
		s.mu.Unlock()
		return keys, nil
	}
	gen := s.gen
	s.mu.Unlock()

	keys, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if keys == nil {
		keys = []domain.CategoryKey{}
	}

	s.mu.Lock()
	if s.gen == gen {
		s.keys = keys
	}
	s.mu.Unlock()
	return append([]domain.CategoryKey(nil), keys...), nil
}

// Resolve returns the listed category whose label is label. Labels are compared
// whole, so parts containing parentheses resolve like any other.
func (s *NetworkService) Resolve(ctx context.Context, label string) (domain.CategoryKey, error) {
	keys, err := s.Categories(ctx)
	if err != nil {
		return domain.CategoryKey{}, err
	}
	for _, key := range keys {
		if key.Label() == label {
			return key, nil
		}
	}
	return domain.CategoryKey{}, fmt.Errorf("%w: %s", ErrUnknownCategory, label)
}

// Normalize fills defaults and clamps the filter parameters.
func (s *NetworkService) Normalize(params ViewParams) ViewParams {
	switch {
	case params.MaxEdges == 0:
		params.MaxEdges = s.filter.DefaultMaxEdges
	case params.MaxEdges < 1:
		params.MaxEdges = 1
	case params.MaxEdges > s.filter.MaxEdgesLimit:
		params.MaxEdges = s.filter.MaxEdgesLimit
	}
	if params.MinNodeCount < 0 {
		params.MinNodeCount = 0
	}
	return params
}

// View loads the category named by params and selects its visible subgraph.
func (s *NetworkService) View(ctx context.Context, params ViewParams) (View, error) {
	params = s.Normalize(params)
	if params.Key.IsZero() && params.Label != "" {
		key, err := s.Resolve(ctx, params.Label)
		if err != nil {
			return View{}, err
		}
		params.Key = key
	}
	if params.Key.IsZero() {
		keys, err := s.Categories(ctx)
		if err != nil {
			return View{}, err
		}
		if len(keys) == 0 {
			return View{}, ErrNoCategories
		}
		params.Key = keys[0]
	}

	category, err := s.load(ctx, params.Key)
	if err != nil {
		return View{}, err
	}

	sub := network.SelectSubgraph(category.Nodes, category.Edges, params.MaxEdges, params.MinNodeCount)
	adj := network.NewAdjacency(sub)

	label := params.Key.Label()
	metrics.SubgraphNodes.WithLabelValues(label).Set(float64(sub.NodeCount()))
	metrics.SubgraphEdges.WithLabelValues(label).Set(float64(len(sub.Edges)))

	return View{
		Key:        params.Key,
		Label:      label,
		Params:     params,
		Subgraph:   sub,
		Adjacency:  adj,
		Nodes:      nodeViews(sub, adj),
		Edges:      edgeViews(sub.Edges),
		Components: adj.Components(),
	}, nil
}

// Highlight builds the view for params and projects the hover state onto it. An
// empty hovered id means the pointer rests on no node.
func (s *NetworkService) Highlight(ctx context.Context, params ViewParams, hovered string) (Projection, error) {
	view, err := s.View(ctx, params)
	if err != nil {
		return Projection{}, err
	}
	hover := network.NoHover
	if hovered != "" {
		hover = network.HoverOn(hovered)
	}
	return Projection{
		View:   view,
		Hover:  hover,
		States: network.Project(view.Adjacency, hover),
	}, nil
}

// Invalidate asks the store to re-read its data, then drops every cached table.
// Loads that started before the cache was dropped do not write their result back.
func (s *NetworkService) Invalidate(ctx context.Context) error {
	metrics.DatasetReloadsTotal.Inc()
	var reloadErr error
	if r, ok := s.store.(reloader); ok {
		reloadErr = r.Reload(ctx)
	}

	s.mu.Lock()
	s.gen++
	s.keys = nil
	s.cache = make(map[domain.CategoryKey]domain.Category)
	s.mu.Unlock()

	if reloadErr != nil {
		return fmt.Errorf("reload store: %w", reloadErr)
	}
	return nil
}

func (s *NetworkService) load(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	s.mu.Lock()
	category, ok := s.cache[key]
	gen := s.gen
	s.mu.Unlock()
	if ok {
		metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
		return category, nil
	}
	metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()

	category, err := s.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, dataset.ErrCategoryNotFound) || errors.Is(err, repository.ErrCategoryNotFound) {
			return domain.Category{}, fmt.Errorf("%w: %s: %w", ErrUnknownCategory, key.Label(), err)
		}
		return domain.Category{}, fmt.Errorf("load category %s: %w", key.Label(), err)
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cache[key] = category
	}
	s.mu.Unlock()
	return category, nil
}

func nodeViews(sub network.Subgraph, adj *network.Adjacency) []NodeView {
	ids := sub.Nodes()
	views := make([]NodeView, 0, len(ids))
	for _, id := range ids {
		count := sub.Count(id)
		views = append(views, NodeView{
			ID:     id,
			Label:  id,
			Title:  NodeTitle(id, count),
			Count:  count,
			Degree: adj.Degree(id),
		})
	}
	return views
}

func edgeViews(edges []domain.Edge) []EdgeView {
	views := make([]EdgeView, 0, len(edges))
	for _, e := range edges {
		views = append(views, EdgeView{
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
			Color:  network.EdgeColor(e.Weight),
			Title:  EdgeTitle(e.Weight),
		})
	}
	return views
}

// NodeTitle is the hover tooltip of a node.
func NodeTitle(id string, count int) string {
	return fmt.Sprintf("%s\n(count: %d)", id, count)
}

// EdgeTitle is the hover tooltip of an edge.
func EdgeTitle(weight float64) string {
	return "Weight: " + strconv.FormatFloat(weight, 'f', -1, 64)
}
