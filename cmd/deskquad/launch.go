package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/frudas24/deskquad/internal/window"
	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch TOOL",
	Short: "Start a catalog tool and place its window",
	Long:  "Start a tool from the catalog (CATALOG_PATH) and place its first window. --list prints the catalog instead.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().StringP("quadrant", "q", "", "Override the tool's quadrant")
	launchCmd.Flags().Bool("list", false, "List catalog tools")
}

// runLaunch starts the named tool or lists the catalog.
func runLaunch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	catalog, err := a.Catalog()
	if err != nil {
		return err
	}
	if list, _ := cmd.Flags().GetBool("list"); list || len(args) == 0 {
		return printOut(catalog)
	}

	d, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	override, _ := cmd.Flags().GetString("quadrant")
	q, err := a.Launcher().QuadrantFor(d, override)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out, err := a.Launcher().Launch(ctx, d, q)
	var moveErr *window.MoveError
	if err != nil && !errors.As(err, &moveErr) && out.Tool == "" {
		return err
	}
	if perr := printOut(out); perr != nil {
		return perr
	}
	return err
}
