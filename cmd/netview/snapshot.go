package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/render"
)

func snapshotCmd(flags *globalFlags, filter config.FilterConfig) *cobra.Command {
	var (
		view   viewFlags
		output string
		opts   render.SnapshotOptions
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write a static SVG or PNG image of the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			if format != "svg" && format != "png" {
				return fmt.Errorf("output must end in .svg or .png, got %q", output)
			}
			params := view.params()
			sess, err := openSession(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			v, err := sess.service.View(ctx, params)
			if err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer file.Close()
			if err := render.NewSnapshot(v, opts).Write(file, format); err != nil {
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}

			good.Fprintf(cmd.OutOrStdout(), "✓ wrote %s ", output)
			subtle.Fprintf(cmd.OutOrStdout(), "(%s: %d nodes, %d edges)\n", v.Label, len(v.Nodes), len(v.Edges))
			return nil
		},
	}
	view.register(cmd, filter)
	cmd.Flags().StringVarP(&output, "output", "o", "network.svg", "output file (.svg or .png)")
	cmd.Flags().IntVar(&opts.Width, "width", 1200, "image width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 800, "image height in pixels")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "layout seed")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 200, "layout iterations")
	cmd.Flags().StringVar(&opts.Hovered, "hover", "", "draw the highlight of hovering this ingredient")
	return cmd
}
