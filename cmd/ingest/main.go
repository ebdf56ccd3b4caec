package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/recipenet/internal/bootstrap"
	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/logging"
	"github.com/vanshika/recipenet/internal/repository"
	"github.com/vanshika/recipenet/internal/service"
)

func main() {
	var (
		datasetPath = flag.String("dataset", "", "Dataset file to load (.json, .yaml or .db); defaults to DATASET_PATH")
		workers     = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	path := cfg.Dataset.Path
	if *datasetPath != "" {
		path = *datasetPath
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	categories, err := loadCategories(ctx, path)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "path", path)
		os.Exit(1)
	}
	if len(categories) == 0 {
		logger.Error("dataset has no categories", "path", path)
		os.Exit(1)
	}

	graphClient, err := bootstrap.GraphClient(ctx, logger, cfg.Graph)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	ingestor := service.NewBulkIngestor(repository.New(graphClient), *workers)

	start := time.Now()
	logger.Info("ingesting categories", "count", len(categories), "workers", *workers)
	if err := ingestor.IngestCategories(ctx, categories); err != nil {
		logger.Error("category ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "categories", len(categories))
}

// loadCategories reads every category from any supported dataset format.
func loadCategories(ctx context.Context, path string) ([]domain.Category, error) {
	store, err := dataset.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	keys, err := store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(keys))
	for _, key := range keys {
		c, err := store.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}
