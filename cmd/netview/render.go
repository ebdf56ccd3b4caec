package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/render"
)

func renderCmd(flags *globalFlags, filter config.FilterConfig) *cobra.Command {
	var (
		view   viewFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the interactive network page to an HTML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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
			keys, err := sess.service.Categories(ctx)
			if err != nil {
				return err
			}
			pages, err := render.NewPageRenderer(render.PhysicsFromConfig(sess.cfg.Physics))
			if err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer file.Close()
			if err := pages.Render(file, render.PageData{Categories: keys, View: v, Filter: sess.service.Filter()}); err != nil {
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}

			good.Fprintf(cmd.OutOrStdout(), "✓ wrote %s ", output)
			subtle.Fprintf(cmd.OutOrStdout(), "(%s: %d nodes, %d edges)\n", v.Label, len(v.Nodes), len(v.Edges))
			if len(v.Edges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "  No edges match the filter; lower --min-count or raise --max-edges.")
			}
			return nil
		},
	}
	view.register(cmd, filter)
	cmd.Flags().StringVarP(&output, "output", "o", "network.html", "output HTML file")
	return cmd
}
