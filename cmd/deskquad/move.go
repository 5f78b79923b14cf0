package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
	"github.com/frudas24/deskquad/internal/window"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a window into a quadrant",
	Long:  "Move a window given by --handle, or the largest window matching the criteria flags, into a quadrant of the primary work area. --wait polls until a match appears.",
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	addCriteriaFlags(moveCmd)
	moveCmd.Flags().String("handle", "", "Window handle (hex or decimal)")
	moveCmd.Flags().StringP("quadrant", "q", "", "Target quadrant TL, TR, BL or BR (default: first of QUADRANT_ORDER)")
	moveCmd.Flags().Bool("full", false, "Use the centered full slot instead of a quadrant")
	moveCmd.Flags().Bool("wait", false, "Poll until a matching window appears")
}

// runMove resolves the target window and places it.
func runMove(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	q, err := targetQuadrant(cmd)
	if err != nil {
		return err
	}
	full, _ := cmd.Flags().GetBool("full")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var res launcher.Result
	if raw, _ := cmd.Flags().GetString("handle"); raw != "" {
		h, err := parseHandle(raw)
		if err != nil {
			return err
		}
		res, err = a.Placer().PlaceHandle(ctx, h, q, full)
		return report(res, err)
	}

	c, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	if c.IsZero() {
		return fmt.Errorf("no window given (use --handle or criteria flags)")
	}
	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		res, err = a.Placer().Place(ctx, launcher.Request{Criteria: c, Quadrant: q, Full: full})
		return report(res, err)
	}
	h, ok := a.Finder().Largest(a.Finder().Find(c))
	if !ok {
		return launcher.ErrWindowNotFound
	}
	res, err = a.Placer().PlaceHandle(ctx, h, q, full)
	return report(res, err)
}

// targetQuadrant reads --quadrant or falls back to the configured order.
func targetQuadrant(cmd *cobra.Command) (geometry.Quadrant, error) {
	if name, _ := cmd.Flags().GetString("quadrant"); name != "" {
		return geometry.ParseQuadrant(name)
	}
	if len(env.cfg.QuadrantOrder) > 0 {
		return env.cfg.QuadrantOrder[0], nil
	}
	return geometry.TopLeft, nil
}

// report prints the placement result, including failed moves, and returns err.
func report(res launcher.Result, err error) error {
	var moveErr *window.MoveError
	if err != nil && !errors.As(err, &moveErr) {
		return err
	}
	if perr := printOut(res); perr != nil {
		return perr
	}
	return err
}
