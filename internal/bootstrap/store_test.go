package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/graph"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStoreFromDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs.yaml")
	categories := []domain.Category{{Key: domain.CategoryKey{Primary: "Soup", Secondary: "Korean"}}}
	require.NoError(t, dataset.WriteFile(path, categories))

	cfg := config.Default()
	cfg.Dataset.Path = path
	store, err := OpenStore(context.Background(), discardLogger(), cfg, "")
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.Equal(t, path, store.Path)
	assert.Nil(t, store.Graph)
	keys, err := store.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestOpenStoreMissingDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.json")

	_, err := OpenStore(context.Background(), discardLogger(), cfg, "")
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)
}

func TestGraphClientRequiresURI(t *testing.T) {
	_, err := GraphClient(context.Background(), discardLogger(), config.GraphConfig{})
	assert.ErrorIs(t, err, graph.ErrMissingURI)
}
