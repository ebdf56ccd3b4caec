package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanshika/recipenet/internal/bootstrap"
	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/logging"
	"github.com/vanshika/recipenet/internal/service"
)

type globalFlags struct {
	dataset string
	verbose bool
}

// viewFlags are shared by every command that selects a subgraph.
type viewFlags struct {
	category string
	maxEdges int
	minCount int
}

func (f *viewFlags) register(cmd *cobra.Command, filter config.FilterConfig) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", `category label, e.g. "Soup (Korean)"; defaults to the first one`)
	cmd.Flags().IntVarP(&f.maxEdges, "max-edges", "n", filter.DefaultMaxEdges, "maximum number of edges to keep")
	cmd.Flags().IntVarP(&f.minCount, "min-count", "m", filter.DefaultMinNodeCount, "minimum node count for an ingredient to be shown")
}

func (f *viewFlags) params() service.ViewParams {
	return service.ViewParams{
		Label:        strings.TrimSpace(f.category),
		MaxEdges:     f.maxEdges,
		MinNodeCount: f.minCount,
	}
}

// session bundles what a command needs once configuration is loaded.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *bootstrap.Store
	service *service.NetworkService
}

func (s *session) Close() {
	if err := s.store.Close(context.Background()); err != nil {
		s.logger.Warn("closing category store failed", "error", err)
	}
}

func openSession(ctx context.Context, flags *globalFlags, stderr io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !flags.verbose {
		cfg.Logging.Level = "warn"
	}
	logger := logging.NewWithWriter(stderr, cfg.Logging).With("component", "netview")

	store, err := bootstrap.OpenStore(ctx, logger, cfg, flags.dataset)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		service: service.NewNetworkService(store, cfg.Filter),
	}, nil
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}
	defaults := config.Default()

	root := &cobra.Command{
		Use:   "netview",
		Short: "Inspect and export ingredient co-occurrence networks",
		Long: brand.Sprint("netview") + " selects the strongest ingredient pairings of a category\n" +
			subtle.Sprint("and renders them as an interactive page or a static image."),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.dataset, "dataset", "d", "", "dataset file (.json, .yaml, .db); defaults to DATASET_PATH or Neo4j when GRAPH_URI is set")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(
		categoriesCmd(flags),
		renderCmd(flags, defaults.Filter),
		snapshotCmd(flags, defaults.Filter),
		highlightCmd(flags, defaults.Filter),
	)

	wrapErrors(root)
	return root
}

// wrapErrors prints any RunE error in red on the command's stderr.
func wrapErrors(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		run := c.RunE
		if run == nil {
			continue
		}
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "netview: %v\n", err)
			}
			return err
		}
	}
}
