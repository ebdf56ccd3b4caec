package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/network"
)

var (
	soupKey = domain.CategoryKey{Primary: "Soup", Secondary: "Korean"}
	stewKey = domain.CategoryKey{Primary: "Stew", Secondary: "Korean"}
)

type stubStore struct {
	categories []domain.Category
	loads      map[domain.CategoryKey]int
	reloads    int
	listErr    error
	loadErr    error
}

func newStubStore(categories ...domain.Category) *stubStore {
	return &stubStore{categories: categories, loads: make(map[domain.CategoryKey]int)}
}

func (s *stubStore) Categories(ctx context.Context) ([]domain.CategoryKey, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]domain.CategoryKey, 0, len(s.categories))
	for _, c := range s.categories {
		keys = append(keys, c.Key)
	}
	return keys, nil
}

func (s *stubStore) Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	s.loads[key]++
	if s.loadErr != nil {
		return domain.Category{}, s.loadErr
	}
	for _, c := range s.categories {
		if c.Key == key {
			return c, nil
		}
	}
	return domain.Category{}, dataset.ErrCategoryNotFound
}

func (s *stubStore) Reload(ctx context.Context) error {
	s.reloads++
	return nil
}

func soupCategory() domain.Category {
	return domain.Category{
		Key: soupKey,
		Nodes: []domain.Node{
			{ID: "garlic", Count: 10},
			{ID: "onion", Count: 8},
			{ID: "tofu", Count: 3},
			{ID: "salt", Count: 1},
		},
		Edges: []domain.Edge{
			{Source: "garlic", Target: "onion", Weight: 600},
			{Source: "garlic", Target: "tofu", Weight: 120},
			{Source: "onion", Target: "salt", Weight: 40},
		},
	}
}

func testFilter() config.FilterConfig {
	return config.FilterConfig{DefaultMaxEdges: 100, MaxEdgesLimit: 2000, MaxEdgesStep: 100}
}

func TestNormalize(t *testing.T) {
	svc := NewNetworkService(newStubStore(), testFilter())

	cases := []struct {
		name string
		in   ViewParams
		want ViewParams
	}{
		{"defaults", ViewParams{}, ViewParams{MaxEdges: 100}},
		{"negative max edges", ViewParams{MaxEdges: -5}, ViewParams{MaxEdges: 1}},
		{"above limit", ViewParams{MaxEdges: 5000}, ViewParams{MaxEdges: 2000}},
		{"negative min count", ViewParams{MaxEdges: 10, MinNodeCount: -1}, ViewParams{MaxEdges: 10}},
		{"in range", ViewParams{MaxEdges: 300, MinNodeCount: 4}, ViewParams{MaxEdges: 300, MinNodeCount: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.Normalize(tc.in))
		})
	}
}

func TestViewBuildsRenderableNetwork(t *testing.T) {
	svc := NewNetworkService(newStubStore(soupCategory()), testFilter())

	view, err := svc.View(context.Background(), ViewParams{Key: soupKey, MaxEdges: 2, MinNodeCount: 2})
	require.NoError(t, err)

	assert.Equal(t, "Soup (Korean)", view.Label)
	require.Len(t, view.Edges, 2)
	assert.Equal(t, "rgba(100, 100, 100, 1.0)", view.Edges[0].Color)
	assert.Equal(t, "rgba(100, 100, 100, 0.3)", view.Edges[1].Color)
	assert.Equal(t, "Weight: 600", view.Edges[0].Title)

	ids := make([]string, 0, len(view.Nodes))
	for _, n := range view.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"garlic", "onion", "tofu"}, ids)
	assert.Equal(t, "garlic\n(count: 10)", view.Nodes[0].Title)
	assert.Equal(t, 2, view.Nodes[0].Degree)
	assert.Equal(t, 1, view.Components)
}

func TestViewDefaultsToFirstCategory(t *testing.T) {
	stew := domain.Category{Key: stewKey}
	svc := NewNetworkService(newStubStore(soupCategory(), stew), testFilter())

	view, err := svc.View(context.Background(), ViewParams{})
	require.NoError(t, err)
	assert.Equal(t, soupKey, view.Key)
	assert.Equal(t, 100, view.Params.MaxEdges)
}

func TestViewResolvesLabel(t *testing.T) {
	nested := domain.CategoryKey{Primary: "Soup", Secondary: "clear (light)"}
	category := soupCategory()
	category.Key = nested
	svc := NewNetworkService(newStubStore(soupCategory(), category), testFilter())
	ctx := context.Background()

	view, err := svc.View(ctx, ViewParams{Label: "Soup (clear (light))"})
	require.NoError(t, err)
	assert.Equal(t, nested, view.Key)

	view, err = svc.View(ctx, ViewParams{Label: "Soup (Korean)"})
	require.NoError(t, err)
	assert.Equal(t, soupKey, view.Key)

	_, err = svc.View(ctx, ViewParams{Label: "Soup (clear"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestViewEmptyStore(t *testing.T) {
	svc := NewNetworkService(newStubStore(), testFilter())

	_, err := svc.View(context.Background(), ViewParams{})
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestViewUnknownCategory(t *testing.T) {
	svc := NewNetworkService(newStubStore(soupCategory()), testFilter())

	_, err := svc.View(context.Background(), ViewParams{Key: stewKey})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.ErrorIs(t, err, dataset.ErrCategoryNotFound)
}

func TestViewStoreFailure(t *testing.T) {
	store := newStubStore(soupCategory())
	store.loadErr = errors.New("disk on fire")
	svc := NewNetworkService(store, testFilter())

	_, err := svc.View(context.Background(), ViewParams{Key: soupKey})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownCategory)
}

func TestViewCachesLoadsUntilInvalidate(t *testing.T) {
	store := newStubStore(soupCategory())
	svc := NewNetworkService(store, testFilter())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.View(ctx, ViewParams{Key: soupKey, MaxEdges: 10 * (i + 1)})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.loads[soupKey])

	require.NoError(t, svc.Invalidate(ctx))
	assert.Equal(t, 1, store.reloads)

	_, err := svc.View(ctx, ViewParams{Key: soupKey})
	require.NoError(t, err)
	assert.Equal(t, 2, store.loads[soupKey])
}

// reloadingStore serves one category whose edge weight changes on Reload. Reload
// blocks until release is closed.
type reloadingStore struct {
	mu      sync.Mutex
	weight  float64
	next    float64
	started chan struct{}
	release chan struct{}
}

func (s *reloadingStore) Categories(ctx context.Context) ([]domain.CategoryKey, error) {
	return []domain.CategoryKey{soupKey}, nil
}

func (s *reloadingStore) Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Category{
		Key:   soupKey,
		Nodes: []domain.Node{{ID: "garlic", Count: 1}, {ID: "onion", Count: 1}},
		Edges: []domain.Edge{{Source: "garlic", Target: "onion", Weight: s.weight}},
	}, nil
}

func (s *reloadingStore) Reload(ctx context.Context) error {
	close(s.started)
	<-s.release
	s.mu.Lock()
	s.weight = s.next
	s.mu.Unlock()
	return nil
}

func TestInvalidateDuringConcurrentView(t *testing.T) {
	store := &reloadingStore{
		weight:  1,
		next:    999,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewNetworkService(store, testFilter())
	ctx := context.Background()

	view, err := svc.View(ctx, ViewParams{Key: soupKey})
	require.NoError(t, err)
	require.Len(t, view.Edges, 1)
	assert.Equal(t, 1.0, view.Edges[0].Weight)

	done := make(chan error, 1)
	go func() { done <- svc.Invalidate(ctx) }()
	<-store.started

	view, err = svc.View(ctx, ViewParams{Key: soupKey})
	require.NoError(t, err)
	assert.Equal(t, 1.0, view.Edges[0].Weight)

	close(store.release)
	require.NoError(t, <-done)

	view, err = svc.View(ctx, ViewParams{Key: soupKey})
	require.NoError(t, err)
	require.Len(t, view.Edges, 1)
	assert.Equal(t, 999.0, view.Edges[0].Weight)
}

func TestViewEmptySubgraph(t *testing.T) {
	svc := NewNetworkService(newStubStore(soupCategory()), testFilter())

	view, err := svc.View(context.Background(), ViewParams{Key: soupKey, MinNodeCount: 1000})
	require.NoError(t, err)
	assert.True(t, view.Subgraph.IsEmpty())
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
	assert.Zero(t, view.Components)
}

func TestHighlight(t *testing.T) {
	svc := NewNetworkService(newStubStore(soupCategory()), testFilter())
	ctx := context.Background()

	t.Run("hovered node and neighbours emphasized", func(t *testing.T) {
		p, err := svc.Highlight(ctx, ViewParams{Key: soupKey}, "tofu")
		require.NoError(t, err)
		assert.Equal(t, map[string]network.HighlightState{
			"garlic": network.Emphasized,
			"tofu":   network.Emphasized,
			"onion":  network.Dimmed,
			"salt":   network.Dimmed,
		}, p.States)
	})

	t.Run("no hover is neutral", func(t *testing.T) {
		p, err := svc.Highlight(ctx, ViewParams{Key: soupKey}, "")
		require.NoError(t, err)
		assert.False(t, p.Hover.Active)
		for id, state := range p.States {
			assert.Equal(t, network.Neutral, state, id)
		}
	})
}

func TestGraphStoreDelegates(t *testing.T) {
	repo := &stubRepository{keys: []domain.CategoryKey{soupKey}, category: soupCategory()}
	store := NewGraphStore(repo)

	keys, err := store.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryKey{soupKey}, keys)

	c, err := store.Load(context.Background(), soupKey)
	require.NoError(t, err)
	assert.Equal(t, soupCategory(), c)
}

type stubRepository struct {
	keys     []domain.CategoryKey
	category domain.Category
}

func (s *stubRepository) ListCategories(ctx context.Context) ([]domain.CategoryKey, error) {
	return s.keys, nil
}

func (s *stubRepository) LoadCategory(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	return s.category, nil
}
