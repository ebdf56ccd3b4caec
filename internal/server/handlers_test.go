package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/render"
	"github.com/vanshika/recipenet/internal/service"
)

func testCategories() []domain.Category {
	return []domain.Category{
		{
			Key:   domain.CategoryKey{Primary: "Soup", Secondary: "Korean"},
			Nodes: []domain.Node{{ID: "garlic", Count: 10}, {ID: "onion", Count: 8}, {ID: "tofu", Count: 3}, {ID: "salt", Count: 1}},
			Edges: []domain.Edge{
				{Source: "garlic", Target: "onion", Weight: 600},
				{Source: "garlic", Target: "tofu", Weight: 120},
				{Source: "onion", Target: "salt", Weight: 40},
			},
		},
		{
			Key:   domain.CategoryKey{Primary: "Stew", Secondary: "Korean"},
			Nodes: []domain.Node{{ID: "pork", Count: 5}, {ID: "kimchi", Count: 5}},
			Edges: []domain.Edge{{Source: "pork", Target: "kimchi", Weight: 200}},
		},
	}
}

func newTestRouter(t *testing.T, store service.CategoryStore) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	filter := config.Default().Filter
	pages, err := render.NewPageRenderer(render.DefaultPhysics())
	require.NoError(t, err)
	svc := service.NewNetworkService(store, filter)
	return NewRouter(logger, RouterDependencies{
		Health:         StoreHealthService{Store: store},
		Dashboard:      NewHandlers(logger, svc, pages, filter),
		MetricsEnabled: true,
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var payload T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return payload
}

func TestHandleNetwork(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	rec := get(t, router, "/api/network?category="+url.QueryEscape("Soup (Korean)")+"&maxEdges=2&minCount=2")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decode[networkResponse](t, rec)
	assert.Equal(t, "Soup (Korean)", payload.Category.Label)
	require.Len(t, payload.Edges, 2)
	assert.Equal(t, 600.0, payload.Edges[0].Weight)
	assert.Equal(t, "rgba(100, 100, 100, 1.0)", payload.Edges[0].Color)
	require.Len(t, payload.Nodes, 3)
	assert.Equal(t, "garlic", payload.Nodes[0].ID)
	assert.Equal(t, 2, payload.MaxEdges)
	assert.Equal(t, 2, payload.MinCount)
}

func TestHandleNetworkDefaultsToFirstCategory(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	rec := get(t, router, "/api/network")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode[networkResponse](t, rec)
	assert.Equal(t, "Soup", payload.Category.Primary)
	assert.Equal(t, 100, payload.MaxEdges)
}

func TestHandleNetworkNestedParenthesesLabel(t *testing.T) {
	key := domain.CategoryKey{Primary: "Soup", Secondary: "clear (light)"}
	router := newTestRouter(t, dataset.NewMemoryStore([]domain.Category{{
		Key:   key,
		Nodes: []domain.Node{{ID: "garlic", Count: 2}, {ID: "leek", Count: 2}},
		Edges: []domain.Edge{{Source: "garlic", Target: "leek", Weight: 30}},
	}}))

	rec := get(t, router, "/api/network?category="+url.QueryEscape(key.Label()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decode[networkResponse](t, rec)
	assert.Equal(t, "Soup", payload.Category.Primary)
	assert.Equal(t, "clear (light)", payload.Category.Secondary)
}

func TestHandleNetworkErrors(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"unknown category", "/api/network?category=" + url.QueryEscape("Salad (Thai)"), http.StatusNotFound},
		{"label without secondary", "/api/network?category=Salad", http.StatusNotFound},
		{"non-numeric maxEdges", "/api/network?maxEdges=lots", http.StatusBadRequest},
		{"non-numeric minCount", "/api/network?minCount=1.5", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, router, tc.target)
			require.Equal(t, tc.status, rec.Code)
			payload := decode[map[string]string](t, rec)
			assert.NotEmpty(t, payload["error"])
		})
	}
}

func TestHandleCategories(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	rec := get(t, router, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode[struct {
		Items []categoryResponse `json:"items"`
	}](t, rec)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "Stew (Korean)", payload.Items[1].Label)
}

type highlightPayload struct {
	Hovered *string           `json:"hovered"`
	States  map[string]string `json:"states"`
}

func TestHandleHighlight(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	t.Run("hovered node", func(t *testing.T) {
		rec := get(t, router, "/api/highlight?node=tofu")
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decode[highlightPayload](t, rec)
		require.NotNil(t, payload.Hovered)
		assert.Equal(t, "tofu", *payload.Hovered)
		assert.Equal(t, map[string]string{
			"garlic": "emphasized",
			"tofu":   "emphasized",
			"onion":  "dimmed",
			"salt":   "dimmed",
		}, payload.States)
	})

	t.Run("no hover", func(t *testing.T) {
		rec := get(t, router, "/api/highlight")
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decode[highlightPayload](t, rec)
		assert.Nil(t, payload.Hovered)
		for id, state := range payload.States {
			assert.Equal(t, "neutral", state, id)
		}
	})
}

func TestHandleIndex(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	rec := get(t, router, "/?category="+url.QueryEscape("Stew (Korean)"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `network.on("hoverNode"`)
	assert.Contains(t, body, `network.on("blurNode"`)
	assert.Contains(t, body, `<option value="Stew (Korean)" selected>`)

	assert.Equal(t, http.StatusNotFound, get(t, router, "/nope").Code)
}

func TestHandleIndexEmptyStore(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(nil))

	assert.Equal(t, http.StatusNotFound, get(t, router, "/").Code)
}

func TestHandleSnapshot(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	rec := get(t, router, "/export/snapshot.svg?seed=3&node=garlic")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = get(t, router, "/export/snapshot.png?width=200&height=150")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), "png signature")

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/export/snapshot.png?width=99999").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, dataset.NewMemoryStore(testCategories()))

	req := httptest.NewRequest(http.MethodPost, "/api/network", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

type failingStore struct{}

func (failingStore) Categories(ctx context.Context) ([]domain.CategoryKey, error) {
	return nil, errors.New("store offline")
}

func (failingStore) Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	return domain.Category{}, errors.New("store offline")
}

func TestStoreFailures(t *testing.T) {
	router := newTestRouter(t, failingStore{})

	rec := get(t, router, "/api/network?category="+url.QueryEscape("Soup (Korean)"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = get(t, router, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
