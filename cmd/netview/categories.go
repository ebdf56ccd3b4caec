package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func categoriesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in the store with their table sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := openSession(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			keys, err := sess.store.Categories(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				fmt.Fprintln(out, "  No categories found.")
				return nil
			}

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				c, err := sess.store.Load(ctx, key)
				if err != nil {
					return err
				}
				summary := c.Summarize()
				rows = append(rows, []string{key.Label(), strconv.Itoa(summary.NodeCount), strconv.Itoa(summary.EdgeCount)})
			}
			table(out, []string{"Category", "Nodes", "Edges"}, rows)
			return nil
		},
	}
}
