package main

import (
	"fmt"
	"time"

	"github.com/milk9111/actionkit/logging"
	"github.com/milk9111/actionkit/recipe"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [recipe...]",
		Short: "Build recipes without running them",
		Long:  "Build each named recipe, or every known recipe when none are named, and report the ones that fail.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = recipe.Names()
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range names {
				if err := validateRecipe(name); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d recipes failed", failed, len(names))
			}
			return nil
		},
	}
}

func validateRecipe(name string) error {
	defer logging.LogDuration(logging.Get("validate").With().Str("recipe", name).Logger(), time.Now(), "validate")
	r, err := recipe.LoadRecipe(name)
	if err != nil {
		return err
	}
	return recipe.Validate(r)
}
