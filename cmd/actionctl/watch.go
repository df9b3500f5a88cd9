package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/milk9111/actionkit/logging"
	"github.com/milk9111/actionkit/recipe"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	ro := runOptions{stopMoveAt: -1, stopAllAt: -1}
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Rerun recipes in a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			recipe.SetDir(dir)
			dirs := []string{dir}
			if info, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && info.IsDir() {
				dirs = append(dirs, filepath.Join(dir, "scripts"))
			}
			w, err := recipe.NewWatcher(dirs...)
			if err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			defer w.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", dir)
			return watchLoop(cmd.Context(), w, cmd.OutOrStdout(), func(path string) {
				rerun(cmd.OutOrStdout(), opts, ro, path)
			})
		},
	}
	cmd.Flags().IntVarP(&ro.frames, "frames", "n", 600, "Maximum number of frames to simulate per run")
	return cmd
}

func watchLoop(ctx context.Context, w *recipe.Watcher, out io.Writer, onChange func(path string)) error {
	logger := logging.Get("watch")
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			evt := logger.Info().Str("path", path)
			if mod, ok := recipe.ModTime(filepath.Base(path)); ok {
				evt = evt.Time("modified", mod)
			}
			evt.Msg("change detected")
			onChange(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		}
	}
}

// rerun runs the changed recipe. A changed script revalidates every recipe.
func rerun(out io.Writer, opts *options, ro runOptions, path string) {
	if filepath.Ext(path) == ".tengo" {
		for _, name := range recipe.Names() {
			if err := validateRecipe(name); err != nil {
				fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			}
		}
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	r, err := recipe.LoadRecipe(filepath.Base(path))
	if err != nil {
		fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
		return
	}
	if err := runRecipe(out, opts.cfg, r, ro); err != nil {
		fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
	}
}
