package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/recipenet/internal/bootstrap"
	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/logging"
	"github.com/vanshika/recipenet/internal/render"
	"github.com/vanshika/recipenet/internal/server"
	"github.com/vanshika/recipenet/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, logger, cfg, "")
	if err != nil {
		logger.Error("failed to open category store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("closing category store failed", "error", err)
		}
	}()

	pages, err := render.NewPageRenderer(render.PhysicsFromConfig(cfg.Physics))
	if err != nil {
		logger.Error("failed to build page renderer", "error", err)
		os.Exit(1)
	}

	networkService := service.NewNetworkService(store, cfg.Filter)

	var health server.HealthService = server.StoreHealthService{Store: store}
	if store.Graph != nil {
		health = server.GraphHealthService{Client: store.Graph}
	}

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           health,
		Dashboard:        server.NewHandlers(logger, networkService, pages, cfg.Filter),
		MetricsEnabled:   cfg.HTTP.MetricsEnabled,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: false,
	})
	srv := server.New(logger, cfg.HTTP, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if cfg.Dataset.Watch && store.Path != "" {
		g.Go(func() error {
			logger.Info("watching dataset for changes", "path", store.Path)
			return dataset.Watch(gctx, store.Path, func() {
				if err := networkService.Invalidate(gctx); err != nil {
					logger.Error("dataset reload failed, keeping previous contents", "error", err, "path", store.Path)
					return
				}
				logger.Info("dataset reloaded", "path", store.Path)
			}, dataset.WithOnError(func(err error) {
				logger.Warn("dataset watcher error", "error", err)
			}))
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
