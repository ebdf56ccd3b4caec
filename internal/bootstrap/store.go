// Package bootstrap opens the category store a binary reads from.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/graph"
	"github.com/vanshika/recipenet/internal/repository"
	"github.com/vanshika/recipenet/internal/service"
)

// Store is an opened category store. Exactly one of Graph and Dataset is set.
type Store struct {
	service.CategoryStore
	Graph   graph.Client
	Dataset dataset.Store
	// Path is the dataset file, empty when reading from Neo4j.
	Path string
}

// Close releases the underlying connection or file.
func (s *Store) Close(ctx context.Context) error {
	if s.Graph != nil {
		return s.Graph.Close(ctx)
	}
	if s.Dataset != nil {
		return s.Dataset.Close()
	}
	return nil
}

// Reload re-reads the dataset file; Neo4j is always read live.
func (s *Store) Reload(ctx context.Context) error {
	if s.Dataset != nil {
		return s.Dataset.Reload(ctx)
	}
	return nil
}

// OpenStore reads from Neo4j when GRAPH_URI is configured and datasetOverride is
// empty, otherwise from the dataset file.
func OpenStore(ctx context.Context, logger *slog.Logger, cfg config.Config, datasetOverride string) (*Store, error) {
	if cfg.Graph.URI != "" && datasetOverride == "" {
		client, err := GraphClient(ctx, logger, cfg.Graph)
		if err != nil {
			return nil, err
		}
		return &Store{
			CategoryStore: service.NewGraphStore(repository.New(client)),
			Graph:         client,
		}, nil
	}

	path := cfg.Dataset.Path
	if datasetOverride != "" {
		path = datasetOverride
	}
	ds, err := dataset.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	logger.Info("opened dataset", "path", path)
	return &Store{CategoryStore: ds, Dataset: ds, Path: path}, nil
}

// GraphClient connects to Neo4j and verifies the connection.
func GraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (graph.Client, error) {
	if cfg.URI == "" {
		return nil, graph.ErrMissingURI
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.URI, "database", cfg.Database)
	return client, nil
}
