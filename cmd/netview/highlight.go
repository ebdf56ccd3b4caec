package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/network"
)

func highlightCmd(flags *globalFlags, filter config.FilterConfig) *cobra.Command {
	var (
		view viewFlags
		node string
	)
	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Show which ingredients hovering a node emphasizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			params := view.params()
			sess, err := openSession(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			projection, err := sess.service.Highlight(ctx, params, node)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			brand.Fprintf(out, "%s\n", projection.View.Label)
			if node != "" && !projection.View.Subgraph.Has(node) {
				fmt.Fprintf(out, "  %q is not visible with the current filter; every node is dimmed.\n", node)
			}

			counts := map[network.HighlightState]int{}
			for _, n := range projection.View.Nodes {
				state := projection.States[n.ID]
				counts[state]++
				stateColor(state).Fprintf(out, "  %-24s %s\n", n.ID, state)
			}
			subtle.Fprintf(out, "\n  emphasized: %d  dimmed: %d  neutral: %d\n",
				counts[network.Emphasized], counts[network.Dimmed], counts[network.Neutral])
			return nil
		},
	}
	view.register(cmd, filter)
	cmd.Flags().StringVar(&node, "node", "", "ingredient under the pointer; empty means no hover")
	return cmd
}
