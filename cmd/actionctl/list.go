package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/milk9111/actionkit/recipe"
	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range recipe.Names() {
				desc := ""
				if r, err := recipe.LoadRecipe(name); err == nil {
					desc = r.Description
				} else {
					desc = "error: " + err.Error()
				}
				fmt.Fprintf(tw, "%s\t%s\n", name, desc)
			}
			return tw.Flush()
		},
	}
}
