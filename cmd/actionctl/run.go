package main

import (
	"fmt"
	"io"

	"github.com/milk9111/actionkit/config"
	"github.com/milk9111/actionkit/recipe"
	"github.com/milk9111/actionkit/sim"
	"github.com/spf13/cobra"
)

type runOptions struct {
	frames     int
	stopMoveAt int
	stopAllAt  int
}

func newRunCmd(opts *options) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <recipe>",
		Short: "Run a recipe headless and print its lifecycle events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := recipe.LoadRecipe(args[0])
			if err != nil {
				return err
			}
			return runRecipe(cmd.OutOrStdout(), opts.cfg, r, *ro)
		},
	}
	cmd.Flags().IntVarP(&ro.frames, "frames", "n", 600, "Maximum number of frames to simulate")
	cmd.Flags().IntVar(&ro.stopMoveAt, "stop-move-at", -1, "Stop Move actions at this frame")
	cmd.Flags().IntVar(&ro.stopAllAt, "stop-all-at", -1, "Stop every action at this frame")
	return cmd
}

func runRecipe(out io.Writer, cfg config.Config, r *recipe.Recipe, ro runOptions) error {
	if ro.frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", ro.frames)
	}
	s, err := sim.Start(sim.NewWorld(cfg), cfg, r)
	if err != nil {
		return err
	}
	defer s.Stop()

	fmt.Fprintf(out, "recipe %s: %s\n", r.Name, s.Root)
	printEvents(out, s)
	for s.Frames() < ro.frames && !s.Done() {
		switch s.Frames() {
		case ro.stopMoveAt:
			s.Registry().StopMove()
		case ro.stopAllAt:
			s.Registry().StopAll()
		}
		printEvents(out, s)
		if s.Done() {
			break
		}
		s.Step()
		printEvents(out, s)
	}

	t := s.Transform()
	fmt.Fprintf(out, "final: state=%s frames=%d x=%.2f y=%.2f rotation=%.3f scale=%.2fx%.2f\n",
		s.Root.State(), s.Frames(), t.X, t.Y, t.Rotation, t.ScaleX, t.ScaleY)
	return nil
}

func printEvents(out io.Writer, s *sim.Session) {
	for _, evt := range s.Events() {
		fmt.Fprintln(out, sim.FormatEvent(s.Frames(), evt))
	}
	for _, evt := range s.WorldEvents() {
		fmt.Fprintln(out, sim.FormatWorldEvent(s.Frames(), evt))
	}
}
