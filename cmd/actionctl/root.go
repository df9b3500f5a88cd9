package main

import (
	"github.com/milk9111/actionkit/config"
	"github.com/milk9111/actionkit/logging"
	"github.com/milk9111/actionkit/recipe"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	verbosity  int
	configPath string
	recipeDir  string
	cfg        config.Config
}

// NewRootCmd builds the actionctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "actionctl",
		Short: "Run and check action recipes without a window",
		Long: `actionctl loads action recipes, builds their action trees and runs them
against a headless entity world, printing every lifecycle event.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logging.Setup(max(opts.verbosity, cfg.LogLevel), cmd.ErrOrStderr())
			if opts.recipeDir != "" {
				opts.cfg.RecipeDir = opts.recipeDir
			}
			recipe.SetDir(opts.cfg.RecipeDir)
			log.Debug().Str("command", cmd.Name()).Str("recipe_dir", opts.cfg.RecipeDir).Msg("command started")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			recipe.SetDir("")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringVarP(&opts.recipeDir, "dir", "d", "", "Directory whose recipes override the embedded ones")

	root.AddCommand(
		newRunCmd(opts),
		newValidateCmd(opts),
		newListCmd(opts),
		newWatchCmd(opts),
	)
	return root
}
